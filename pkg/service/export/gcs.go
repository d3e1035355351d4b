package export

import (
	"context"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/interfaces"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
	"github.com/mindcorps/psyrisk/pkg/utils/safe"
)

// GCS writes documents into a Cloud Storage bucket under an optional prefix
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.Exporter = &GCS{}

func NewGCS(ctx context.Context, bucket, prefix string) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("export bucket is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &GCS{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (g *GCS) objectName(file string) string {
	if g.prefix == "" {
		return file
	}
	return path.Join(g.prefix, file)
}

func (g *GCS) Export(ctx context.Context, name string, doc *model.ReportDocument) (string, error) {
	file, err := fileName(name)
	if err != nil {
		return "", err
	}

	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	object := g.objectName(file)
	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w, "bucket", g.bucket, "object", object)
		return "", goerr.Wrap(err, "failed to write report object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", object))
	}
	// the object is committed on Close
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to commit report object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", object))
	}

	return fmt.Sprintf("gs://%s/%s", g.bucket, object), nil
}

func (g *GCS) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
