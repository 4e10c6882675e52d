package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/afar2liu/mcp-mermaid-go/internal/mermaid"
)

// Save writes data to path, creating parent directories as needed. Failures
// wrap mermaid.ErrInternal.
func Save(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %v", mermaid.ErrInternal, dir, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write file %s: %v", mermaid.ErrInternal, path, err)
	}
	return nil
}

// SaveText writes UTF-8 text such as SVG markup.
func SaveText(path, text string) error {
	return Save(path, []byte(text))
}
