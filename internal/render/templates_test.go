package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/chromascale/internal/colour"
)

func TestTemplateNames(t *testing.T) {
	names, err := TemplateNames()
	if err != nil {
		t.Fatalf("TemplateNames() error = %v", err)
	}
	want := []string{"palette.css.tmpl", "preview.html.tmpl"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("TemplateNames() = %v, want %v", names, want)
	}
}

func TestDumpTemplates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")

	written, err := DumpTemplates(dir, false)
	if err != nil {
		t.Fatalf("DumpTemplates() error = %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("DumpTemplates() wrote %d files, want 2", len(written))
	}

	written, err = DumpTemplates(dir, false)
	if !errors.Is(err, ErrTemplateExists) || len(written) != 0 {
		t.Errorf("second DumpTemplates() = %v, %v; want nothing written and ErrTemplateExists", written, err)
	}

	written, err = DumpTemplates(dir, true)
	if err != nil || len(written) != 2 {
		t.Errorf("forced DumpTemplates() = %v, %v", written, err)
	}

	if _, err := DumpTemplates("", false); err == nil {
		t.Error("DumpTemplates(\"\") succeeded")
	}
}

func TestCustomTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	custom := `{{ range .Fills }}{{ .Class }}={{ .Hex }};{{ end }}`
	if err := os.WriteFile(filepath.Join(dir, "palette.css.tmpl"), []byte(custom), 0o600); err != nil {
		t.Fatal(err)
	}

	p := seededPalette(colour.ModeCohesive)
	files, err := Render(sixGroupSVG(), p, Options{TemplateDir: dir})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	css := string(files[StylesheetFile])
	if !strings.HasPrefix(css, "fill-1="+p.Colours[0]+";") {
		t.Errorf("custom stylesheet not used: %q", css)
	}
	// preview.html has no override and falls back to the embedded template.
	if !strings.Contains(string(files[PreviewFile]), "<!DOCTYPE html>") {
		t.Error("preview did not fall back to the embedded template")
	}
}

func TestCustomTemplateParseError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "palette.css.tmpl"), []byte("{{ .Nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Stylesheet(seededPalette(colour.ModeCohesive), Options{TemplateDir: dir}); err == nil {
		t.Error("Stylesheet() accepted a broken custom template")
	}
}
