package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

// Local writes documents into a directory
type Local struct {
	dir string
}

var _ interfaces.Exporter = &Local{}

// NewLocal creates the directory when needed
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, goerr.New("export directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create export directory", goerr.V("dir", dir))
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Export(ctx context.Context, name string, doc *model.ReportDocument) (string, error) {
	file, err := fileName(name)
	if err != nil {
		return "", err
	}

	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	// write then rename so readers never see a partial document
	dst := filepath.Join(l.dir, file)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to write report document", goerr.V("path", tmp))
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", goerr.Wrap(err, "failed to move report document", goerr.V("path", dst))
	}

	return dst, nil
}
