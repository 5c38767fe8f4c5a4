package importer

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/aidanlsb/navport/internal/document"
)

// InputError is fatal for the whole run: the document could not be read or
// parsed. No store writes happen before it is returned.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	var perr *document.ParseError
	if errors.As(e.Err, &perr) {
		return fmt.Sprintf("%s: %v", e.Path, perr)
	}
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the document file does not exist.
func (e *InputError) NotFound() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}
