package domain

import (
	"errors"
	"fmt"
)

// Error types for domain-specific errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeLoad       ErrorType = "load"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeComposite  ErrorType = "composite"
	ErrorTypeEncode     ErrorType = "encode"
	ErrorTypePackaging  ErrorType = "packaging"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeCanceled   ErrorType = "canceled"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err wraps a DomainError of type t
func IsType(err error, t ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type == t
	}
	return false
}

// Common error constructors
func ValidationError(message string, err error) *DomainError {
	return NewError(ErrorTypeValidation, message, err)
}

func LoadError(message string, err error) *DomainError {
	return NewError(ErrorTypeLoad, message, err)
}

func RenderError(message string, err error) *DomainError {
	return NewError(ErrorTypeRender, message, err)
}

func CompositeError(message string, err error) *DomainError {
	return NewError(ErrorTypeComposite, message, err)
}

func EncodeError(message string, err error) *DomainError {
	return NewError(ErrorTypeEncode, message, err)
}

func PackagingError(message string, err error) *DomainError {
	return NewError(ErrorTypePackaging, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}

func CanceledError(message string, err error) *DomainError {
	return NewError(ErrorTypeCanceled, message, err)
}
