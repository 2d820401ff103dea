package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/drawkit/pkg/errors"
)

// ReadJSON decodes a JSON scene from r. The document uses the same fields
// as the TOML form, with plural names for the element lists:
//
//	{
//	  "name": "triangle",
//	  "graphs": [{"vertices": [{"at": [100, 100]}, {"at": [300, 100]}],
//	              "edges": [{"from": 0, "to": 1}]}]
//	}
//
// Unknown fields are rejected. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	return &s, nil
}

// WriteJSON encodes s as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(s *Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a JSON scene file.
func ImportJSON(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes s to a JSON file at path.
func ExportJSON(s *Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

// Open reads a scene file, choosing the format by extension: ".json" is
// JSON and anything else TOML. A scene without a name is named after the
// file.
func Open(path string) (*Scene, error) {
	var (
		s   *Scene
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		s, err = ImportJSON(path)
	} else {
		s, err = Load(path)
	}
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}
