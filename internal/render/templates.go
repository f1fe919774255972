package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrTemplateExists is returned by DumpTemplates when a file would be
// overwritten without force.
var ErrTemplateExists = errors.New("custom template already exists")

// DefaultTemplateDir returns ~/.config/chromascale/templates, or "" when the
// home directory is unknown.
func DefaultTemplateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "chromascale", "templates")
}

// TemplateNames lists the embedded templates.
func TemplateNames() ([]string, error) {
	var names []string
	err := fs.WalkDir(templates, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".tmpl" {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// loadTemplate reads name from dir when a custom copy exists there, otherwise
// from the embedded set. The bool reports a custom hit.
func loadTemplate(dir, name string) ([]byte, bool, error) {
	if dir != "" {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return content, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("failed to read custom template %s: %w", name, err)
		}
	}

	content, err := templates.ReadFile(name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return content, false, nil
}

// DumpTemplates copies the embedded templates into dir so they can be edited
// and picked up through Options.TemplateDir. Existing files are skipped with
// ErrTemplateExists unless force is set; the written paths are returned.
func DumpTemplates(dir string, force bool) ([]string, error) {
	if dir == "" {
		return nil, errors.New("template directory is required")
	}
	names, err := TemplateNames()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	var (
		written []string
		skipped []error
	)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				skipped = append(skipped, fmt.Errorf("%w: %s", ErrTemplateExists, path))
				continue
			}
		}
		content, err := templates.ReadFile(name)
		if err != nil {
			return written, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, errors.Join(skipped...)
}
