package common

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// DecodeLine unmarshals a single NDJSON line into a type T.
// Surrounding whitespace and a UTF-8 BOM are tolerated; anything that is not
// a JSON object is rejected.
func DecodeLine[T any](line []byte) (T, error) {
	var zero T
	data := bytes.TrimSpace(bytes.TrimPrefix(line, []byte("\xef\xbb\xbf")))
	if len(data) == 0 {
		return zero, errors.New("empty line")
	}
	if data[0] != '{' {
		return zero, errors.Newf("not a JSON object (starts with %q)", data[0])
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return zero, errors.Wrap(err, "unmarshal line")
	}
	return result, nil
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
