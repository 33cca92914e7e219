package sheet

import (
	"errors"
	"fmt"
)

// ErrFetch indicates the spreadsheet bytes could not be retrieved.
var ErrFetch = errors.New("fetch spreadsheet")

// ErrDecode indicates the bytes are not a readable xlsx workbook.
var ErrDecode = errors.New("decode spreadsheet")

// StatusError reports a non-200 response from the file endpoint.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// Is lets errors.Is(err, ErrFetch) match a StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrFetch
}
