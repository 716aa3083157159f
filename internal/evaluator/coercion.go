package evaluator

import (
	"strconv"
	"strings"
	"time"
)

// typeSpec is the structured form of a type name as it appears after a
// `:` in a DECLARE, parameter, field, or return-type position. The parser
// keeps these as plain strings (`^INTEGER`, `ARRAY[1:5] OF INTEGER`); the
// evaluator re-parses that string back into this shape once, at the point
// it needs to act on it (declaring storage, building a default value).
type typeSpec struct {
	kind        string // "scalar", "pointer", "array"
	scalarName  string
	pointerBase string
	lowers      []int64
	uppers      []int64
	arrayBase   string
}

func isBuiltinScalar(name string) bool {
	switch name {
	case "INTEGER", "REAL", "STRING", "CHAR", "BOOLEAN", "DATE":
		return true
	}
	return false
}

func parseTypeSpec(raw string) typeSpec {
	if strings.HasPrefix(raw, "^") {
		return typeSpec{kind: "pointer", pointerBase: raw[1:]}
	}
	if strings.HasPrefix(raw, "ARRAY[") {
		return parseArrayTypeSpec(raw)
	}
	return typeSpec{kind: "scalar", scalarName: raw}
}

func parseArrayTypeSpec(raw string) typeSpec {
	end := strings.Index(raw, "]")
	bounds := raw[len("ARRAY[") : end]
	base := strings.TrimSpace(strings.TrimPrefix(raw[end+1:], " OF "))

	var lowers, uppers []int64
	for _, dim := range strings.Split(bounds, ", ") {
		parts := strings.SplitN(dim, ":", 2)
		low, _ := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		high, _ := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		lowers = append(lowers, low)
		uppers = append(uppers, high)
	}
	return typeSpec{kind: "array", lowers: lowers, uppers: uppers, arrayBase: base}
}

// defaultValue returns the zero value for a builtin scalar type, per
// original_source's default_value().
func defaultValue(typeName string) Value {
	switch typeName {
	case "INTEGER":
		return &IntegerValue{}
	case "REAL":
		return &RealValue{}
	case "STRING":
		return &StringValue{}
	case "CHAR":
		return &CharValue{}
	case "BOOLEAN":
		return &BooleanValue{}
	case "DATE":
		return &DateValue{}
	default:
		return &UnitValue{}
	}
}

// asFloat extracts a numeric value's float64 form; ok is false for
// non-numeric values.
func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *IntegerValue:
		return float64(n.Value), true
	case *RealValue:
		return n.Value, true
	}
	return 0, false
}

// numericValue extends asFloat with STRING parsing, used by convert() so
// an INPUT line typed by the user can land in an INTEGER or REAL variable.
func numericValue(v Value) (float64, bool) {
	if f, ok := asFloat(v); ok {
		return f, true
	}
	if s, ok := v.(*StringValue); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// convert coerces value to expectedType, per original_source's convert().
// For any expectedType that is not a builtin scalar (a record, array,
// pointer, or pointer-alias type name) the value is returned unchanged;
// no check is made that its shape matches that type.
func convert(value Value, expectedType string) (Value, bool) {
	switch expectedType {
	case "INTEGER":
		if f, ok := numericValue(value); ok {
			return &IntegerValue{Value: int64(f)}, true
		}
		return nil, false
	case "REAL":
		if f, ok := numericValue(value); ok {
			return &RealValue{Value: f}, true
		}
		return nil, false
	case "STRING":
		return &StringValue{Value: value.String()}, true
	case "CHAR":
		if c, ok := value.(*CharValue); ok {
			return c, true
		}
		if s, ok := value.(*StringValue); ok && len(s.Value) == 1 {
			return &CharValue{Value: s.Value[0]}, true
		}
		return nil, false
	case "BOOLEAN":
		if b, ok := value.(*BooleanValue); ok {
			return b, true
		}
		if s, ok := value.(*StringValue); ok {
			switch s.Value {
			case "TRUE":
				return &BooleanValue{Value: true}, true
			case "FALSE":
				return &BooleanValue{Value: false}, true
			}
		}
		return nil, false
	case "DATE":
		if d, ok := value.(*DateValue); ok {
			return d, true
		}
		if s, ok := value.(*StringValue); ok {
			t, err := time.Parse("2006-01-02", strings.TrimSpace(s.Value))
			if err != nil {
				return nil, false
			}
			return &DateValue{Value: t}, true
		}
		return nil, false
	default:
		// User-defined record/array/pointer type name, or no declared
		// type yet: accept the value unchanged.
		return value, true
	}
}
