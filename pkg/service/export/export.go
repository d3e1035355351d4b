// Package export writes report documents as JSON to a local directory or a
// Cloud Storage bucket.
package export

import (
	"encoding/json"
	"path"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindcorps/psyrisk/pkg/domain/model"
)

var (
	ErrInvalidName = goerr.New("invalid export name")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Encode returns the JSON form of doc shared by every exporter
func Encode(doc *model.ReportDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode report document")
	}
	return append(data, '\n'), nil
}

// fileName validates name and adds the .json extension. Names come from
// company and sector IDs, so anything that could escape the destination is
// rejected.
func fileName(name string) (string, error) {
	if !validName.MatchString(name) || name != path.Base(name) {
		return "", goerr.Wrap(ErrInvalidName, "name must be a single path element", goerr.V("name", name))
	}
	return name + ".json", nil
}
