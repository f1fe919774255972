package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/chromascale/internal/cli"
	"github.com/jmylchreest/chromascale/internal/colour"
	"github.com/jmylchreest/chromascale/internal/config"
	"github.com/jmylchreest/chromascale/internal/store"
)

// isolate clears configuration that could leak in from the environment.
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		config.EnvGoogleAPIKey, config.EnvGeminiAPIKey, config.EnvIntegrationAPIKey,
		config.EnvIntegrationURL, config.EnvDatabase, config.EnvLogLevel, config.EnvAIBackend,
	} {
		t.Setenv(name, "")
	}
	// Keeps the default template directory away from the real home.
	t.Setenv("HOME", t.TempDir())
}

// run executes a fresh root command and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		t.Logf("stderr: %s", errOut.String())
	}
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, "chromascale") {
		t.Errorf("version output = %q", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	isolate(t)

	t.Run("SeededJSON", func(t *testing.T) {
		out, err := run(t, "", "generate", "--hue", "210", "--saturation", "60", "--json")
		if err != nil {
			t.Fatalf("generate error = %v", err)
		}
		var p colour.Palette
		if err := json.Unmarshal([]byte(out), &p); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, out)
		}
		if p.Hue != 210 || p.Saturation != 60 || p.Mode != colour.ModeCohesive {
			t.Errorf("palette = %+v", p)
		}
		if want := colour.HSLToHex(210, 60, colour.SeededDarkest); p.Colours[0] != want {
			t.Errorf("Colours[0] = %s, want %s", p.Colours[0], want)
		}
		if want := colour.HSLToHex(210, 60, colour.SeededLightest); p.Colours[5] != want {
			t.Errorf("Colours[5] = %s, want %s", p.Colours[5], want)
		}
	})

	t.Run("TextOutput", func(t *testing.T) {
		out, err := run(t, "", "generate", "--mode", "vibrant")
		if err != nil {
			t.Fatalf("generate error = %v", err)
		}
		if !strings.Contains(out, "Mode: vibrant") || strings.Count(out, "#") != colour.SlotCount {
			t.Errorf("unexpected output:\n%s", out)
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("swatches written to a non-terminal")
		}
	})

	t.Run("SuggestWithoutKeyFallsBack", func(t *testing.T) {
		out, err := run(t, "", "generate", "--suggest", "--json")
		if err != nil {
			t.Fatalf("generate --suggest error = %v", err)
		}
		var p colour.Palette
		if err := json.Unmarshal([]byte(out), &p); err != nil || len(p.Colours) != colour.SlotCount {
			t.Errorf("fallback palette = %q, %v", out, err)
		}
	})

	t.Run("SuggestClientFailureFallsBack", func(t *testing.T) {
		t.Setenv(config.EnvAIBackend, config.BackendVertexAI)
		t.Setenv("GOOGLE_CLOUD_PROJECT", "")
		t.Setenv("GOOGLE_CLOUD_LOCATION", "")
		t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))

		out, err := run(t, "", "generate", "--suggest", "--json")
		if err != nil {
			t.Fatalf("generate --suggest error = %v", err)
		}
		var p colour.Palette
		if err := json.Unmarshal([]byte(out), &p); err != nil || len(p.Colours) != colour.SlotCount {
			t.Errorf("fallback palette = %q, %v", out, err)
		}
	})

	t.Run("HueNeedsSaturation", func(t *testing.T) {
		if _, err := run(t, "", "generate", "--hue", "10"); err == nil {
			t.Error("expected an error for --hue without --saturation")
		}
	})

	t.Run("InvalidMode", func(t *testing.T) {
		if _, err := run(t, "", "generate", "--mode", "neon"); err == nil {
			t.Error("expected an error for an invalid mode")
		}
	})
}

const drawing = `<svg xmlns="http://www.w3.org/2000/svg"><g id="_x31_"><path d="M0 0h1v1z"/></g><g id="_x32_"/></svg>`

func TestAnnotateCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	t.Run("Stdin", func(t *testing.T) {
		out, err := run(t, drawing, "annotate", "-")
		if err != nil {
			t.Fatalf("annotate error = %v", err)
		}
		if !strings.Contains(out, `id="_x31_" class="fill-1"`) || !strings.Contains(out, `id="_x32_" class="fill-2"`) {
			t.Errorf("annotate output = %s", out)
		}
	})

	t.Run("FileToFile", func(t *testing.T) {
		src := filepath.Join(dir, "in.svg")
		dst := filepath.Join(dir, "out.svg")
		if err := os.WriteFile(src, []byte(drawing), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := run(t, "", "annotate", src, "-o", dst); err != nil {
			t.Fatalf("annotate error = %v", err)
		}
		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Count(string(got), "class=") != 2 {
			t.Errorf("annotated file = %s", got)
		}
	})

	t.Run("PlainHTTPRejected", func(t *testing.T) {
		if _, err := run(t, "", "annotate", "http://example.com/a.svg"); err == nil {
			t.Error("expected plain HTTP to be rejected")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := run(t, "", "annotate", filepath.Join(dir, "nope.svg")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "drawing.svg")
	if err := os.WriteFile(src, []byte(drawing), 0o600); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "preview")

	out, err := run(t, "", "render", src, "--hue", "30", "--saturation", "70", "--output-dir", outDir, "--title", "Sand")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, "palette.css") || !strings.Contains(out, "preview.html") {
		t.Errorf("render output = %s", out)
	}

	css, err := os.ReadFile(filepath.Join(outDir, "palette.css"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "--fill-1: " + colour.HSLToHex(30, 70, colour.SeededDarkest); !strings.Contains(string(css), want) {
		t.Errorf("palette.css missing %q:\n%s", want, css)
	}
	html, err := os.ReadFile(filepath.Join(outDir, "preview.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), `class="fill-1"`) || !strings.Contains(string(html), "<title>Sand</title>") {
		t.Errorf("preview.html = %s", html)
	}
}

func TestPalettesCommands(t *testing.T) {
	isolate(t)
	db := filepath.Join(t.TempDir(), "palettes.db")

	if _, err := run(t, "", "--database", db, "generate", "--hue", "120", "--saturation", "50", "--save", "Forest"); err != nil {
		t.Fatalf("generate --save error = %v", err)
	}
	if _, err := run(t, "", "--database", db, "palettes", "save", "Manual",
		"--colors", "#101010,#303030,#505050,#707070,#909090,#B0B0B0"); err != nil {
		t.Fatalf("palettes save error = %v", err)
	}

	out, err := run(t, "", "--database", db, "palettes", "list")
	if err != nil {
		t.Fatalf("palettes list error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("list output has %d lines, want header, rule and 2 rows:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "Manual") || !strings.Contains(lines[3], "Forest") {
		t.Errorf("list not newest first:\n%s", out)
	}

	out, err = run(t, "", "--database", db, "palettes", "show", "1", "--json")
	if err != nil {
		t.Fatalf("palettes show error = %v", err)
	}
	var rec store.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("show output is not JSON: %v", err)
	}
	if rec.Name != "Forest" || rec.Hue != 120 {
		t.Errorf("record = %+v", rec)
	}

	if _, err := run(t, "", "--database", db, "palettes", "delete", "1"); err != nil {
		t.Fatalf("palettes delete error = %v", err)
	}
	if _, err := run(t, "", "--database", db, "palettes", "show", "1"); err == nil {
		t.Error("expected an error showing a deleted palette")
	}
	if _, err := run(t, "", "--database", db, "palettes", "show", "abc"); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
}

func TestGuidedCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "guided")
	if err != nil {
		t.Fatalf("guided error = %v", err)
	}
	for _, role := range []string{"Deep Base", "Highlight"} {
		if !strings.Contains(out, role) {
			t.Errorf("guided output missing %q", role)
		}
	}
}

func TestTemplatesCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "templates", "list")
	if err != nil {
		t.Fatalf("templates list error = %v", err)
	}
	if !strings.Contains(out, "palette.css.tmpl") {
		t.Errorf("templates list = %q", out)
	}

	dir := t.TempDir()
	if _, err := run(t, "", "templates", "dump", "--dir", dir); err != nil {
		t.Fatalf("templates dump error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "preview.html.tmpl")); err != nil {
		t.Errorf("dumped template missing: %v", err)
	}
	// A second dump skips existing files without failing.
	if _, err := run(t, "", "templates", "dump", "--dir", dir); err != nil {
		t.Errorf("second templates dump error = %v", err)
	}
}
