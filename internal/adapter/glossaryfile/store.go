// Package glossaryfile loads and saves glossaries kept in JSON or YAML files.
package glossaryfile

import (
	"context"
	"fmt"
	"os"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

// FileStore reads the glossary from disk on every Load.
type FileStore struct {
	path   string
	format Format
}

// NewFileStore creates a FileStore for the glossary at path.
func NewFileStore(path string, format Format) *FileStore {
	return &FileStore{path: path, format: format}
}

// Load reads and decodes the whole glossary file. Any failure is reported
// as domain.ErrDataUnavailable; nothing is returned from a partial read.
func (s *FileStore) Load(ctx context.Context) (*domain.Glossary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Read(s.path, s.format)
}

// Read loads the glossary at path in the given format.
func Read(path string, format Format) (*domain.Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glossary %s: %w: %w", path, domain.ErrDataUnavailable, err)
	}

	entries, err := decode(data, format.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("glossary %s: %w: %w", path, domain.ErrDataUnavailable, err)
	}
	for _, e := range entries {
		if e.Term == "" {
			return nil, fmt.Errorf("glossary %s: %w: empty term", path, domain.ErrDataUnavailable)
		}
	}
	return domain.NewGlossary(entries...), nil
}

func decode(data []byte, format Format) ([]domain.Entry, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func encode(entries []domain.Entry, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return encodeYAML(entries)
	default:
		return encodeJSON(entries)
	}
}
