package squeeze

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type returned by everything in this module. Every
// error derived from one of the kinds below satisfies errors.Is against that
// kind, and against any cause attached with Wrap.
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseSqueezeError string

const rootError = baseSqueezeError("")

var ErrIO = rootError.WithMessage("Input/output error")
var ErrExists = ErrIO.WithMessage("File exists")
var ErrEmptyInput = rootError.WithMessage("Input is empty")
var ErrMalformedStream = rootError.WithMessage("Malformed compressed stream")
var ErrTruncatedStream = ErrMalformedStream.WithMessage("unexpected end of stream")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrNotSupported = rootError.WithMessage("Operation not supported")

func (e baseSqueezeError) Error() string {
	return string(e)
}

func (e baseSqueezeError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseSqueezeError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

// Wrap attaches a cause to a copy of the error. Neither the cause nor the
// original error is lost; both can be found with errors.Is or errors.As.
func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}

// WithCleanupError joins an error raised while releasing resources onto the
// error that caused the operation to fail. If the operation didn't fail, the
// cleanup error is returned as an I/O error on its own.
func WithCleanupError(primary, cleanup error) error {
	if cleanup == nil {
		return primary
	}
	if primary == nil {
		return ErrIO.Wrap(cleanup)
	}
	return multierror.Append(primary, cleanup)
}
