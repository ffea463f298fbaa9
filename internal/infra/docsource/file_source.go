package docsource

import (
	"context"
	"fmt"
	"os"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
)

// FileSource reads the preference document from local disk.
type FileSource struct {
	path string
}

// NewFileSource constructs a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements hotelpref.DocumentSource.
func (s *FileSource) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.path, err)
	}
	return string(data), nil
}

var _ hotelpref.DocumentSource = (*FileSource)(nil)
