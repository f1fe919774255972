// Package compression unpacks SVG documents delivered compressed (.svgz,
// .svg.gz, .svg.xz, .svg.bz2) or inside an archive (.zip, .tar, .tar.gz,
// .tar.xz, .tar.bz2). Formats are detected from magic bytes; anything
// unrecognised is returned unchanged.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/chromascale/internal/security"
)

// DefaultMaxBytes caps the decompressed size of a document.
const DefaultMaxBytes = 50 << 20

// Format is a detected container or compression format.
type Format string

const (
	FormatPlain Format = "plain"
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
	FormatZip   Format = "zip"
	FormatTar   Format = "tar"
)

// ErrNoSVG is returned when an archive holds no .svg member.
var ErrNoSVG = errors.New("archive contains no .svg file")

var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicXz    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicBzip2 = []byte("BZh")
	magicZip   = []byte("PK\x03\x04")
)

// Detect identifies the format of data from its magic bytes. name is only
// consulted for tar archives.
func Detect(data []byte, name string) Format {
	switch {
	case bytes.HasPrefix(data, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(data, magicXz):
		return FormatXz
	case bytes.HasPrefix(data, magicBzip2):
		return FormatBzip2
	case bytes.HasPrefix(data, magicZip):
		return FormatZip
	case isTar(data):
		return FormatTar
	}

	// Short tarballs may lack the ustar header.
	if strings.HasSuffix(strings.ToLower(name), ".tar") {
		return FormatTar
	}
	return FormatPlain
}

// isTar checks for the ustar magic at offset 257.
func isTar(data []byte) bool {
	return len(data) >= 262 && string(data[257:262]) == "ustar"
}

// Decompress returns the SVG document inside data. Compressed streams are
// decoded, archives are searched for their first .svg member, and a
// decompressed tarball is unpacked in turn. maxBytes <= 0 selects
// DefaultMaxBytes.
func Decompress(data []byte, name string, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	format := Detect(data, name)
	switch format {
	case FormatPlain:
		return data, nil
	case FormatZip:
		return svgFromZip(data, maxBytes)
	case FormatTar:
		return svgFromTar(bytes.NewReader(data), maxBytes)
	}

	r, err := streamReader(format, data)
	if err != nil {
		return nil, err
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	out, err := io.ReadAll(security.NewLimitedReader(r, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", format, err)
	}

	// .tar.gz and friends.
	if isTar(out) {
		return svgFromTar(bytes.NewReader(out), maxBytes)
	}
	return out, nil
}

func streamReader(format Format, data []byte) (io.Reader, error) {
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, nil
	case FormatXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzr, nil
	case FormatBzip2:
		return bzip2.NewReader(bytes.NewReader(data)), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func isSVGName(name string) bool {
	base := path.Base(name)
	return strings.HasSuffix(strings.ToLower(base), ".svg") && !strings.HasPrefix(base, ".")
}
