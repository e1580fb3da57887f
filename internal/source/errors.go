package source

import (
	"github.com/cockroachdb/errors"
)

// ErrInputUnavailable marks every failure to obtain the raw asset collection.
// Callers test for it with errors.Is.
var ErrInputUnavailable = errors.New("asset input unavailable")

// Unavailable wraps err and marks it as ErrInputUnavailable.
func Unavailable(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrInputUnavailable)
}
