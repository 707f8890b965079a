// Package pdftest builds small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"image"
	"strings"
)

// Page dictionary templates taking the MediaBox width and height.
const (
	TypedPage   = "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] >>"
	UntypedPage = "<< /Parent 2 0 R /MediaBox [0 0 %d %d] >>"
)

// Build returns a minimal PDF with one blank page per size (in points).
// Object offsets and the xref table are computed, so both pdfcpu and MuPDF
// accept the file without repair.
func Build(sizes ...image.Point) []byte {
	return BuildPages(TypedPage, sizes...)
}

// BuildPages is Build with a custom page dictionary template.
func BuildPages(page string, sizes ...image.Point) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(sizes))
	for i := range sizes {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /Resources << >> >>", strings.Join(kids, " "), len(sizes)))
	for _, s := range sizes {
		obj(fmt.Sprintf(page, s.X, s.Y))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}
