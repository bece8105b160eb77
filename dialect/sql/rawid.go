package sql

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	noodle "github.com/glowcouch/storage-noodle"
)

var errUnsupportedRawID = errors.New("unsupported raw id type")

// ParseRawID decodes the textual form of a raw identifier of type R.
// Integer kinds are parsed in base 10, string kinds are taken verbatim and
// types implementing encoding.TextUnmarshaler, such as uuid.UUID, decode
// themselves.
func ParseRawID[R comparable](s string) (R, error) {
	var raw R
	if err := parseRawID(&raw, s); err != nil {
		var zero R
		return zero, noodle.NewRawIDError(s, fmt.Sprintf("%T", raw), err)
	}
	return raw, nil
}

func parseRawID(dst any, s string) error {
	if tu, ok := dst.(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(s))
	}
	rv := reflect.ValueOf(dst).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return err
		}
		rv.SetUint(n)
	case reflect.String:
		rv.SetString(s)
	default:
		return errUnsupportedRawID
	}
	return nil
}
