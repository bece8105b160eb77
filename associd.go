package noodle

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AssocID is the identifier of a stored E, wrapping the raw identifier R
// that the backing storage assigned to it.
//
// The E parameter only exists at compile time: an AssocID[Cookie, int64]
// can not be passed where an AssocID[Recipe, int64] is expected, although
// both hold an int64. Two AssocIDs are equal iff their raw values are equal.
type AssocID[E any, R comparable] struct {
	_   [0]*E
	raw R
}

// NewAssocID returns the AssocID of E wrapping the given raw identifier.
//
//	id := noodle.NewAssocID[Recipe](int64(42))
func NewAssocID[E any, R comparable](raw R) AssocID[E, R] {
	return AssocID[E, R]{raw: raw}
}

// Raw returns the raw identifier.
func (id AssocID[E, R]) Raw() R {
	return id.raw
}

// IsZero reports whether the raw identifier is the zero value of R.
func (id AssocID[E, R]) IsZero() bool {
	var zero R
	return id.raw == zero
}

// String implements fmt.Stringer.
func (id AssocID[E, R]) String() string {
	return fmt.Sprint(id.raw)
}

// Value implements driver.Valuer. The id is stored as its raw value.
func (id AssocID[E, R]) Value() (driver.Value, error) {
	return driver.DefaultParameterConverter.ConvertValue(id.raw)
}

// Scan implements sql.Scanner.
func (id *AssocID[E, R]) Scan(src any) error {
	var v sql.Null[R]
	if err := v.Scan(src); err != nil {
		return fmt.Errorf("noodle: scan id: %w", err)
	}
	if !v.Valid {
		return fmt.Errorf("noodle: scan id: unexpected NULL")
	}
	id.raw = v.V
	return nil
}

// MarshalJSON implements json.Marshaler.
func (id AssocID[E, R]) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *AssocID[E, R]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &id.raw)
}
