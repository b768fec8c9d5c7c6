package animj

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/animx/errs"
	"github.com/arloliu/animx/value"
)

// parser turns one document node into a value of a fixed kind.
// field is the path of the node, used in StructuralError.
type parser[T any] func(node any, field string) (T, error)

var (
	errNotNumber   = errors.New("expected a number")
	errNotIntegral = errors.New("expected an integer")
	errOutOfRange  = errors.New("number out of range")
)

func numberError(field string, node any, err error) error {
	return errs.NewStructuralError(field, "%v, got %v (%T)", err, node, node)
}

// toFloat64 accepts any number a JSON or YAML parser produces.
func toFloat64(node any) (float64, bool) {
	switch n := node.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}

// toInt64 extracts a signed integer that fits in bits, rejecting fractions.
func toInt64(node any, bits int) (int64, error) {
	var i int64

	switch n := node.(type) {
	case json.Number:
		parsed, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return floatToInt64(n, bits)
		}
		i = parsed
	case int:
		i = int64(n)
	case int64:
		i = n
	case int32:
		i = int64(n)
	case uint32:
		i = int64(n)
	case uint64:
		if n > math.MaxInt64 {
			return 0, errOutOfRange
		}
		i = int64(n)
	default:
		return floatToInt64(node, bits)
	}

	if bits < 64 && (i < -(1<<(bits-1)) || i >= 1<<(bits-1)) {
		return 0, errOutOfRange
	}

	return i, nil
}

func floatToInt64(node any, bits int) (int64, error) {
	f, ok := toFloat64(node)
	if !ok {
		return 0, errNotNumber
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotIntegral
	}

	limit := math.Ldexp(1, bits-1)
	if f < -limit || f >= limit {
		return 0, errOutOfRange
	}

	return int64(f), nil
}

// toUint64 extracts an unsigned integer that fits in bits, rejecting fractions and negatives.
func toUint64(node any, bits int) (uint64, error) {
	var u uint64

	switch n := node.(type) {
	case json.Number:
		parsed, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return floatToUint64(n, bits)
		}
		u = parsed
	case uint64:
		u = n
	case uint32:
		u = uint64(n)
	case int:
		if n < 0 {
			return 0, errOutOfRange
		}
		u = uint64(n)
	case int64:
		if n < 0 {
			return 0, errOutOfRange
		}
		u = uint64(n)
	case int32:
		if n < 0 {
			return 0, errOutOfRange
		}
		u = uint64(n)
	default:
		return floatToUint64(node, bits)
	}

	if bits < 64 && u >= 1<<bits {
		return 0, errOutOfRange
	}

	return u, nil
}

func floatToUint64(node any, bits int) (uint64, error) {
	f, ok := toFloat64(node)
	if !ok {
		return 0, errNotNumber
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotIntegral
	}
	if f < 0 || f >= math.Ldexp(1, bits) {
		return 0, errOutOfRange
	}

	return uint64(f), nil
}

func signed[T int8 | int16 | int32 | int64](bits int) parser[T] {
	return func(node any, field string) (T, error) {
		i, err := toInt64(node, bits)
		if err != nil {
			return 0, numberError(field, node, err)
		}

		return T(i), nil
	}
}

func unsigned[T uint8 | uint16 | uint32 | uint64](bits int) parser[T] {
	return func(node any, field string) (T, error) {
		u, err := toUint64(node, bits)
		if err != nil {
			return 0, numberError(field, node, err)
		}

		return T(u), nil
	}
}

func parseFloat32(node any, field string) (float32, error) {
	f, ok := toFloat64(node)
	if !ok {
		return 0, numberError(field, node, errNotNumber)
	}
	if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, numberError(field, node, errOutOfRange)
	}

	return float32(f), nil
}

func parseFloat64(node any, field string) (float64, error) {
	f, ok := toFloat64(node)
	if !ok {
		return 0, numberError(field, node, errNotNumber)
	}

	return f, nil
}

func parseBool(node any, field string) (bool, error) {
	b, ok := node.(bool)
	if !ok {
		return false, errs.NewStructuralError(field, "expected a boolean, got %T", node)
	}

	return b, nil
}

func parseOptString(node any, field string) (value.OptString, error) {
	switch s := node.(type) {
	case nil:
		return value.OptString{}, nil
	case string:
		return value.String(s), nil
	default:
		return value.OptString{}, errs.NewStructuralError(field, "expected a string or null, got %T", node)
	}
}

var (
	vectorFields = [4]string{"x", "y", "z", "w"}
	colorFields  = [4]string{"r", "g", "b", "a"}
)

// components reads n named members of an object node.
func components[T any](node any, field string, names [4]string, n int, p parser[T]) ([4]T, error) {
	var out [4]T

	obj, ok := node.(map[string]any)
	if !ok {
		return out, errs.NewStructuralError(field, "expected an object, got %T", node)
	}

	for i := range n {
		member, ok := obj[names[i]]
		if !ok {
			return out, errs.NewStructuralError(field+"."+names[i], "missing")
		}

		v, err := p(member, field+"."+names[i])
		if err != nil {
			return out, err
		}
		out[i] = v
	}

	return out, nil
}

// vector builds a parser for an {x,y[,z[,w]]} object of n components.
func vector[T, C any](n int, p parser[C], build func([4]C) T) parser[T] {
	return func(node any, field string) (T, error) {
		c, err := components(node, field, vectorFields, n, p)
		if err != nil {
			var zero T
			return zero, err
		}

		return build(c), nil
	}
}

// matrix builds a parser for an n x n array of row arrays.
func matrix[T, C any](n int, p parser[C], build func([4][4]C) T) parser[T] {
	return func(node any, field string) (T, error) {
		var zero T
		var m [4][4]C

		rows, ok := node.([]any)
		if !ok || len(rows) != n {
			return zero, errs.NewStructuralError(field, "expected an array of %d rows", n)
		}

		for i, row := range rows {
			rowField := fmt.Sprintf("%s[%d]", field, i)
			cols, ok := row.([]any)
			if !ok || len(cols) != n {
				return zero, errs.NewStructuralError(rowField, "expected an array of %d numbers", n)
			}

			for j, col := range cols {
				v, err := p(col, fmt.Sprintf("%s[%d]", rowField, j))
				if err != nil {
					return zero, err
				}
				m[i][j] = v
			}
		}

		return build(m), nil
	}
}

var (
	parseByte   = unsigned[uint8](8)
	parseUshort = unsigned[uint16](16)
	parseUint   = unsigned[uint32](32)
	parseUlong  = unsigned[uint64](64)
	parseSbyte  = signed[int8](8)
	parseShort  = signed[int16](16)
	parseInt    = signed[int32](32)
	parseLong   = signed[int64](64)
)

func parseColor(node any, field string) (value.Color, error) {
	c, err := components(node, field, colorFields, 4, parseFloat32)
	if err != nil {
		return value.Color{}, err
	}

	return value.Color{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

func parseColor32(node any, field string) (value.Color32, error) {
	c, err := components(node, field, colorFields, 4, parseByte)
	if err != nil {
		return value.Color32{}, err
	}

	return value.Color32{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}
