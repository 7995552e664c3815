package objectwire

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// ScalarConverter coerces a decoded scalar wire value into a requested Go
// type, an external scalar-conversion contract: the instantiation ladder
// probes it before falling back to reflective default construction.
type ScalarConverter interface {
	Convert(value any, target reflect.Type) (any, error)
}

var timeType = reflect.TypeOf(time.Time{})

// defaultConverter is the built-in ScalarConverter. No third-party scalar
// coercion library appears anywhere in the retrieval pack (see
// DESIGN.md), so this stays on strconv/reflect/time.
type defaultConverter struct{}

func (defaultConverter) Convert(value any, target reflect.Type) (any, error) {
	if target == nil {
		return value, nil
	}
	if value == nil {
		return reflect.Zero(target).Interface(), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target) {
		return value, nil
	}
	if target == timeType {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("cannot convert %T to time.Time", value)
		}
		return parseRFC3339(s)
	}
	if isBasicScalarKind(rv.Type().Kind()) && isBasicScalarKind(target.Kind()) && rv.Type().ConvertibleTo(target) {
		return rv.Convert(target).Interface(), nil
	}

	switch target.Kind() {
	case reflect.String:
		return scalarToString(value), nil
	case reflect.Bool:
		return toBool(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(value)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(target).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toInt64(value)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(uint64(n)).Convert(target).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := toFloat64(value)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(f).Convert(target).Interface(), nil
	}

	return nil, fmt.Errorf("cannot convert %T to %s", value, target)
}

func isBasicScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func scalarToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(t)
	default:
		return false, fmt.Errorf("cannot convert %T to bool", v)
	}
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, err
		}
		return int64(f), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(t, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}
}

// parseRFC3339 accepts RFC3339 with or without fractional seconds.
func parseRFC3339(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// formatRFC3339Canonical formats t using RFC3339 with nanosecond precision,
// UTC-normalized, as the canonical wire form for time.Time.
func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
