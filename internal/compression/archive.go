package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jmylchreest/chromascale/internal/security"
)

// svgFromTar returns the first regular .svg member of a tar stream.
func svgFromTar(r io.Reader, maxBytes int64) ([]byte, error) {
	tr := tar.NewReader(r)
	var seen []string

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		seen = append(seen, header.Name)
		if !isSVGName(header.Name) {
			continue
		}

		data, err := io.ReadAll(security.NewLimitedReader(tr, maxBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("%w (found: %v)", ErrNoSVG, seen)
}

// svgFromZip returns the first .svg member of a zip archive.
func svgFromZip(data []byte, maxBytes int64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	var seen []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		seen = append(seen, f.Name)
		if !isSVGName(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		out, err := io.ReadAll(security.NewLimitedReader(rc, maxBytes))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w (found: %v)", ErrNoSVG, seen)
}
