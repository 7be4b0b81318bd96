package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexUint accepts 3, "3" and null. Browser clients send ids both ways.
type FlexUint uint

func (f *FlexUint) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*f = FlexUint(n)
	return nil
}

func (f FlexUint) Uint() uint { return uint(f) }

// FlexBool accepts true/false, 1/0, their string forms and null.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "null" || s == "" {
		*f = false
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", s)
	}
	*f = FlexBool(v)
	return nil
}

func optUint(f *FlexUint) *uint {
	if f == nil {
		return nil
	}
	v := f.Uint()
	return &v
}

func optBool(f *FlexBool) *bool {
	if f == nil {
		return nil
	}
	v := bool(*f)
	return &v
}
