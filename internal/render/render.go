// Package render produces preview files for a palette applied to an SVG
// illustration: a stylesheet mapping palette slots to fill classes and a
// standalone HTML page with the illustration inline.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/jmylchreest/chromascale/internal/colour"
	"github.com/jmylchreest/chromascale/internal/svg"
)

//go:embed *.tmpl
var templates embed.FS

// Output file names.
const (
	StylesheetFile = "palette.css"
	PreviewFile    = "preview.html"
)

// Outline applied to fills when the palette contains white.
const (
	OutlineStroke      = "#000000"
	OutlineStrokeWidth = "0.5"
)

// ErrNoSVG is returned by Render for an empty document.
var ErrNoSVG = errors.New("svg document is empty")

// Options controls rendering.
type Options struct {
	// Title is used for the page title and stylesheet header.
	Title string
	// Uncolored renders every fill as white, the editor's blank state.
	Uncolored bool
	// TemplateDir holds custom palette.css.tmpl or preview.html.tmpl files
	// that replace the embedded ones.
	TemplateDir string
}

// Fill is one palette slot as seen by the templates.
type Fill struct {
	Slot  int
	Class string
	Hex   string
	// Text is a readable label colour over Hex.
	Text string
}

// Data is the template input.
type Data struct {
	Title       string
	Mode        colour.Mode
	Hue         float64
	Saturation  int
	Fills       []Fill
	Stroke      string
	StrokeWidth string
	Stylesheet  string
	// SVG is the annotated document, inserted into the preview verbatim.
	SVG htmltemplate.HTML
}

// NewData prepares template data for p. When any fill is white the
// illustration gets a thin black outline so white regions stay visible.
func NewData(p colour.Palette, opts Options) (Data, error) {
	if err := p.Validate(); err != nil {
		return Data{}, err
	}
	if opts.Uncolored {
		p = uncolored(p)
	}

	title := opts.Title
	if title == "" {
		title = "Palette preview"
	}

	data := Data{
		Title:       title,
		Mode:        p.Mode,
		Hue:         p.Hue,
		Saturation:  p.Saturation,
		Fills:       make([]Fill, len(p.Colours)),
		Stroke:      "transparent",
		StrokeWidth: "0",
		Stylesheet:  StylesheetFile,
	}
	if p.HasWhite() {
		data.Stroke = OutlineStroke
		data.StrokeWidth = OutlineStrokeWidth
	}

	for i, rgb := range p.RGB() {
		data.Fills[i] = Fill{
			Slot:  i + 1,
			Class: svg.ClassName(i + 1),
			Hex:   rgb.Hex(),
			Text:  labelColour(rgb),
		}
	}
	return data, nil
}

// Stylesheet renders palette.css for p.
func Stylesheet(p colour.Palette, opts Options) ([]byte, error) {
	data, err := NewData(p, opts)
	if err != nil {
		return nil, err
	}
	return executeCSS(opts.TemplateDir, data)
}

// Render annotates doc and returns the preview files keyed by file name.
func Render(doc string, p colour.Palette, opts Options) (map[string][]byte, error) {
	if doc == "" {
		return nil, ErrNoSVG
	}

	data, err := NewData(p, opts)
	if err != nil {
		return nil, err
	}
	data.SVG = htmltemplate.HTML(svg.Annotate(doc))

	files := make(map[string][]byte, 2)

	css, err := executeCSS(opts.TemplateDir, data)
	if err != nil {
		return nil, err
	}
	files[StylesheetFile] = css

	html, err := execute(opts.TemplateDir, "preview.html.tmpl", data)
	if err != nil {
		return nil, err
	}
	files[PreviewFile] = html

	return files, nil
}

// WriteFiles writes rendered files into dir, creating it if needed, and
// returns the written paths in name order.
func WriteFiles(dir string, files map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// executeCSS renders the stylesheet. The title lands in a CSS comment, so
// any comment terminator in it is broken up first.
func executeCSS(dir string, data Data) ([]byte, error) {
	data.Title = commentSafe(data.Title)
	return execute(dir, "palette.css.tmpl", data)
}

// commentSafe stops s from closing a /* */ comment.
func commentSafe(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}

// execute parses and runs a template. HTML templates go through
// html/template so palette names are escaped.
func execute(dir, name string, data Data) ([]byte, error) {
	tmplContent, _, err := loadTemplate(dir, name)
	if err != nil {
		return nil, err
	}

	var tmpl executor
	if strings.HasSuffix(name, ".html.tmpl") {
		tmpl, err = htmltemplate.New(name).Parse(string(tmplContent))
	} else {
		tmpl, err = template.New(name).Parse(string(tmplContent))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func uncolored(p colour.Palette) colour.Palette {
	out := p
	out.Colours = make([]string, len(p.Colours))
	for i := range out.Colours {
		out.Colours[i] = colour.White
	}
	return out
}

// labelColour picks black or white text for legibility over c.
func labelColour(c colour.RGB) string {
	if c.Luminance() > 0.179 {
		return "#000000"
	}
	return "#FFFFFF"
}
