package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Parse decodes a manifest document. Decoding is strict: unknown fields are
// rejected so typos in hand-edited manifests surface immediately. The path
// is used for error messages only.
func Parse(path string, data []byte) (*Project, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var project Project
	if err := dec.Decode(&project); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: manifest is empty", path)
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &project, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(path, data)
}

// Marshal encodes the project back to YAML with two-space indentation.
func (p *Project) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
