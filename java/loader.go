package java

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dhamidi/sniff/engine"
)

// Loader reads and parses Java source files for the engine.
type Loader struct{}

func (Loader) Load(ctx context.Context, path string) (*engine.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read java file: %w", err)
	}
	return Unit(path, source)
}

// Unit parses source and collects its suppressions.
func Unit(path string, source []byte) (*engine.Unit, error) {
	root, err := Parse(path, source)
	if err != nil {
		return nil, err
	}
	return &engine.Unit{Path: path, Root: root, Suppressions: Suppressions(root)}, nil
}

// Sources expands paths into the .java files they name. Directories are
// searched recursively; hidden directories and module descriptors are
// skipped. Files given explicitly are kept whatever their extension.
func Sources(paths ...string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scan sources: %w", err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".java" && d.Name() != "module-info.java" {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan sources: %w", err)
		}
	}
	sort.Strings(files)
	return files, nil
}
