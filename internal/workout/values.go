package workout

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumberRegex = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)

// ParseLeadingNumber extracts the first numeric token out of a free-text
// value like "100 kg" or "5.2 km". Unparsable text degrades to 0, it
// never fails - all numeric coercion in the tracker goes through here.
func ParseLeadingNumber(s string) float64 {
	match := leadingNumberRegex.FindString(s)
	if match == "" {
		return 0
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return n
}

// FlexString decodes a JSON string or a JSON number into a string.
// Data logged by older clients mixes both forms for the same field
// (e.g. reps as 10 or "10"), so every string-ish field uses this type.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	// number literal, keep its textual form
	*f = FlexString(b)
	return nil
}

func (f FlexString) Number() float64 {
	return ParseLeadingNumber(string(f))
}

// FlexInt decodes a JSON number or a numeric string into an int,
// degrading to 0 on anything unparsable.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexInt(ParseLeadingNumber(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// FlexFloat decodes a JSON number or a numeric string into a float64,
// degrading to 0 on anything unparsable.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexFloat(ParseLeadingNumber(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(n)
	return nil
}

// NormalizeIntensity maps an intensity value (a 1-5 number or a label)
// to its numeric level. The second return value is false when the value
// carries no usable intensity at all.
func NormalizeIntensity(v string) (int, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return 0, false
	}

	if n := ParseLeadingNumber(v); n != 0 {
		level := int(n)
		if level < 1 {
			level = 1
		}
		if level > 5 {
			level = 5
		}
		return level, true
	}

	switch v {
	case "light":
		return 1, true
	case "moderate":
		return 2, true
	case "medium", "challenging":
		return 3, true
	case "intense", "high":
		return 4, true
	case "maximum":
		return 5, true
	}
	return 0, false
}
