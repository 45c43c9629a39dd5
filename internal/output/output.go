// Package output writes generated modules to disk.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Emit selects what a conversion writes.
type Emit string

const (
	EmitModule Emit = "module" // module.exports=<json>
	EmitJSON   Emit = "json"   // bare AnimationConfig json
	EmitNative Emit = "native" // intermediate movie-clip document
)

// ParseEmit validates an emit mode.
func ParseEmit(s string) (Emit, error) {
	switch e := Emit(strings.ToLower(s)); e {
	case EmitModule, EmitJSON, EmitNative:
		return e, nil
	case "":
		return EmitModule, nil
	default:
		return "", fmt.Errorf("unknown emit mode %q (want module, json or native)", s)
	}
}

// Ext is the file extension for outputs of e.
func (e Emit) Ext() string {
	if e == EmitModule {
		return ".js"
	}
	return ".json"
}

// Path swaps the extension of a module path to match e.
func (e Emit) Path(modulePath string) string {
	return strings.TrimSuffix(modulePath, filepath.Ext(modulePath)) + e.Ext()
}

type Writer interface {
	Write(ctx context.Context, path string, data []byte) error
}

// FileWriter writes through a temporary file in the target directory and renames
// it into place, so readers never observe a partial module.
type FileWriter struct{}

func (w *FileWriter) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", path, err)
	}

	return nil
}
