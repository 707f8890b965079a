// Package archive names stitched images and bundles them into one ZIP file.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spherical/pdf-stitcher/internal/domain"
)

const defaultBaseName = "stitched"

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// Entry is one file of the archive
type Entry struct {
	Name   string
	Data   []byte
	Format domain.Format
}

// FileName returns "<base>-<index>.<ext>" with ext taken from the payload's
// format tag.
func FileName(base string, index int, p domain.Payload) string {
	return fmt.Sprintf("%s-%d.%s", base, index, p.Ext())
}

// Entries names payloads in order, starting at index 1.
func Entries(base string, payloads []domain.Payload) []Entry {
	entries := make([]Entry, len(payloads))
	for i, p := range payloads {
		entries[i] = Entry{
			Name:   FileName(base, i+1, p),
			Data:   p.Data,
			Format: p.Format,
		}
	}
	return entries
}

// BaseName derives a safe base name from the uploaded file name.
func BaseName(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		name = name[:len(name)-len(".pdf")]
	}
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")
	if name == "" {
		return defaultBaseName
	}
	return name
}

// BundleName returns the download name of the archive for base.
func BundleName(base string) string {
	return base + "-stitched.zip"
}

// Generate writes entries into a single ZIP stream.
func Generate(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return domain.PackagingError("no images to package", nil)
	}

	zw := zip.NewWriter(w)
	modified := time.Now()
	for _, e := range entries {
		method := zip.Deflate
		if e.Format == domain.FormatPNG || e.Format == domain.FormatJPEG {
			// already compressed
			method = zip.Store
		}
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   method,
			Modified: modified,
		})
		if err != nil {
			return domain.PackagingError(fmt.Sprintf("failed to add %s", e.Name), err)
		}
		if _, err := f.Write(e.Data); err != nil {
			return domain.PackagingError(fmt.Sprintf("failed to write %s", e.Name), err)
		}
	}
	if err := zw.Close(); err != nil {
		return domain.PackagingError("failed to finish archive", err)
	}
	return nil
}
