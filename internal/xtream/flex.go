package xtream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexID decodes a JSON value that panels encode as either a number or a
// string, normalizing to the string form either way. A numeric 42 and a
// string "42" produce the same identifier.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*f = flexID(strings.TrimSpace(s))

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	// Panels occasionally send ids as floats; keep the integer part.
	if i, err := n.Int64(); err == nil {
		*f = flexID(strconv.FormatInt(i, 10))
	} else if fv, err := n.Float64(); err == nil {
		*f = flexID(strconv.FormatInt(int64(fv), 10))
	} else {
		*f = flexID(n.String())
	}

	return nil
}

func (f flexID) String() string {
	return string(f)
}

// Int returns the numeric value of the id, or 0 when it is not numeric.
func (f flexID) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}

	return n
}

// Int64 is Int for epoch-second fields.
func (f flexID) Int64() int64 {
	n, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return 0
	}

	return n
}
