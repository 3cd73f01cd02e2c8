package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// fieldsFlag collects repeated -field key=value flags into additional profile
// fields. A value that parses as JSON keeps its JSON type, anything else is
// stored as a string.
type fieldsFlag map[string]any

func (f fieldsFlag) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

func (f fieldsFlag) Set(s string) error {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("%w: %q", ErrInvalidField, s)
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	f[key] = value
	return nil
}

// optionalBool is a boolean flag that remembers whether it was given at all.
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.set, b.value = true, v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

// optionalString is a string flag that remembers whether it was given, so an
// explicit empty value can be told apart from an absent flag.
type optionalString struct {
	set   bool
	value string
}

func (s *optionalString) String() string {
	if s == nil {
		return ""
	}
	return s.value
}

func (s *optionalString) Set(v string) error {
	s.set, s.value = true, v
	return nil
}

func (s *optionalString) ptr() *string {
	if !s.set {
		return nil
	}
	v := s.value
	return &v
}
