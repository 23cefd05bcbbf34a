package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/aspect/internal/schema"
)

// FileVersion is the snapshot file format version.
const FileVersion = 1

// document is the on-disk layout of a snapshot file.
type document struct {
	Version   int               `json:"version" yaml:"version" msgpack:"version"`
	Snapshots map[string]string `json:"snapshots" yaml:"snapshots" msgpack:"snapshots"`
}

type codec struct {
	marshal   func(v interface{}) ([]byte, error)
	unmarshal func(data []byte, v interface{}) error
}

var codecs = map[string]codec{
	".yaml":    {marshal: yaml.Marshal, unmarshal: yaml.Unmarshal},
	".yml":     {marshal: yaml.Marshal, unmarshal: yaml.Unmarshal},
	".json":    {marshal: marshalJSON, unmarshal: json.Unmarshal},
	".msgpack": {marshal: msgpack.Marshal, unmarshal: msgpack.Unmarshal},
}

func marshalJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// FileStore persists snapshots in a single file. The format follows the file
// extension: .yaml/.yml, .json or .msgpack.
type FileStore struct {
	Path  string
	codec codec
}

// NewFileStore returns a store for path.
func NewFileStore(path string) (*FileStore, error) {
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported snapshot file extension %q (use .yaml, .yml, .json or .msgpack)", filepath.Ext(path))
	}
	return &FileStore{Path: path, codec: c}, nil
}

// Load implements Store. A missing file yields an empty baseline.
func (f *FileStore) Load(_ context.Context) (Snapshots, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return Snapshots{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return f.decode(data)
}

func (f *FileStore) decode(data []byte) (Snapshots, error) {
	var raw interface{}
	if err := f.codec.unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file %s: %w", f.Path, err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize snapshot file %s: %w", f.Path, err)
	}
	if err := schema.ValidateSnapshots(asJSON); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}

	var doc document
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file %s: %w", f.Path, err)
	}
	if doc.Snapshots == nil {
		return Snapshots{}, nil
	}
	return Snapshots(doc.Snapshots), nil
}

// Save implements Store. The file is replaced atomically.
func (f *FileStore) Save(_ context.Context, s Snapshots) error {
	if s == nil {
		s = Snapshots{}
	}
	data, err := f.codec.marshal(document{Version: FileVersion, Snapshots: s})
	if err != nil {
		return fmt.Errorf("failed to encode snapshots: %w", err)
	}
	return writeFileAtomic(f.Path, data)
}

// writeFileAtomic writes data to a temp file in the same directory and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshots-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}
	tmpPath = ""
	return nil
}
