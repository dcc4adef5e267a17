package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Field values parsed from build-description files are stored as interned strings so that
// the same flag, compiler or path text is shared between units without borrowing.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// InternStrings interns every element of strs.
func InternStrings(strs []string) []InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]InternedString, len(strs))
	for i, s := range strs {
		res[i] = NewInternedString(s)
	}
	return res
}

// Strings returns the plain string values of the given interned strings.
func Strings(values []InternedString) []string {
	if len(values) == 0 {
		return nil
	}
	res := make([]string, len(values))
	for i, v := range values {
		res[i] = v.String()
	}
	return res
}

// String returns the underlying string value.
func (is InternedString) String() string {
	if is.IsZero() {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value was never set.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
