package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/spherical/pdf-stitcher/internal/domain"
	"github.com/spherical/pdf-stitcher/internal/observability"
)

const largeFileSize = 100 * 1024 * 1024 // 100MB

// Info summarises a validated document
type Info struct {
	PageCount int
	Encrypted bool
}

// Validator provides input validation for PDF files
type Validator struct {
	logger *observability.Logger
}

// NewValidator creates a new validator instance
func NewValidator(logger *observability.Logger) *Validator {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Validator{logger: logger.WithOperation("validate")}
}

// ValidatePDFPath validates that a file path is valid and points to a PDF
func (v *Validator) ValidatePDFPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ValidationError("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ValidationError(fmt.Sprintf("file does not exist: %s", path), err)
		}
		return domain.ValidationError(fmt.Sprintf("cannot access file: %s", path), err)
	}

	if info.IsDir() {
		return domain.ValidationError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" {
		return domain.ValidationError(fmt.Sprintf("file is not a PDF (has extension %s)", ext), nil)
	}

	// Large files are allowed, rendering just takes longer.
	if info.Size() > largeFileSize {
		v.logger.Warn().
			Str("path", path).
			Int("size_mb", int(info.Size()/(1024*1024))).
			Msg("PDF file is very large, processing may take a while")
	}

	return nil
}

// Inspect parses and validates raw PDF bytes. pdfcpu panics on some damaged
// cross-reference tables; those come back as load errors too.
func (v *Validator) Inspect(data []byte, password string) (info *Info, err error) {
	if len(data) == 0 {
		return nil, domain.LoadError("PDF data is empty", nil)
	}
	defer func() {
		if r := recover(); r != nil {
			info, err = nil, domain.LoadError("failed to parse PDF", fmt.Errorf("pdfcpu: %v", r))
		}
	}()

	ctx, err := api.ReadContext(bytes.NewReader(data), configuration(password))
	if err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return nil, domain.LoadError("wrong PDF password", err)
		}
		return nil, domain.LoadError("failed to parse PDF", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, domain.LoadError("PDF failed validation", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, domain.LoadError("failed to count PDF pages", err)
	}
	if ctx.PageCount == 0 {
		return nil, domain.LoadError("PDF has no pages", nil)
	}

	return &Info{
		PageCount: ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}, nil
}

// Decrypt returns an unencrypted copy of data for the rasteriser.
func (v *Validator) Decrypt(data []byte, password string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, domain.LoadError("failed to decrypt PDF", fmt.Errorf("pdfcpu: %v", r))
		}
	}()

	var buf bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(data), &buf, configuration(password)); err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return nil, domain.LoadError("wrong PDF password", err)
		}
		return nil, domain.LoadError("failed to decrypt PDF", err)
	}
	return buf.Bytes(), nil
}

// fatal reports whether an Inspect error rules the document out. Anything
// else is a structural complaint MuPDF may still be able to repair.
func fatal(data []byte, err error) bool {
	return len(data) == 0 || errors.Is(err, pdfcpu.ErrWrongPassword)
}

func configuration(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}
	return conf
}
