// Package evaluator tree-walks a parsed program, holding all runtime
// state: variable frames, callables, and the value model below.
package evaluator

import (
	"fmt"
	"strings"
	"time"
)

// Value is any runtime value pseudocode can hold.
type Value interface {
	Type() string
	String() string
}

// IntegerValue is an INTEGER.
type IntegerValue struct{ Value int64 }

func (v *IntegerValue) Type() string   { return "INTEGER" }
func (v *IntegerValue) String() string { return fmt.Sprintf("%d", v.Value) }

// RealValue is a REAL.
type RealValue struct{ Value float64 }

func (v *RealValue) Type() string   { return "REAL" }
func (v *RealValue) String() string { return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v.Value), "0"), ".") }

// StringValue is a STRING.
type StringValue struct{ Value string }

func (v *StringValue) Type() string   { return "STRING" }
func (v *StringValue) String() string { return v.Value }

// CharValue is a CHAR: exactly one byte, per spec.md's ASCII-only scope.
// A zero byte is the unassigned sentinel (defaultValue never constructs a
// real NUL char, since no CHAR literal syntax exists and conversions only
// accept printable single-character strings), so it prints as "" to match
// spec.md's empty-string CHAR default.
type CharValue struct{ Value byte }

func (v *CharValue) Type() string { return "CHAR" }
func (v *CharValue) String() string {
	if v.Value == 0 {
		return ""
	}
	return string(v.Value)
}

// BooleanValue is a BOOLEAN.
type BooleanValue struct{ Value bool }

func (v *BooleanValue) Type() string { return "BOOLEAN" }
func (v *BooleanValue) String() string {
	if v.Value {
		return "TRUE"
	}
	return "FALSE"
}

// DateValue is a DATE, stored as a calendar day with no time component.
type DateValue struct{ Value time.Time }

func (v *DateValue) Type() string   { return "DATE" }
func (v *DateValue) String() string { return v.Value.Format("2006-01-02") }

// RecordValue is an instance of a TYPE ... ENDTYPE record.
type RecordValue struct {
	TypeName string
	Fields   map[string]Value
}

func (v *RecordValue) Type() string { return v.TypeName }
func (v *RecordValue) String() string {
	parts := make([]string, 0, len(v.Fields))
	for name, val := range v.Fields {
		parts = append(parts, name+"="+val.String())
	}
	return v.TypeName + "{" + strings.Join(parts, ", ") + "}"
}

// ArrayValue is an ARRAY of one or more dimensions. Data is sparse: an index tuple that
// was never assigned reads back as BaseType's default value, matching
// original_source's dict-backed array storage.
type ArrayValue struct {
	Lowers, Uppers []int64
	BaseType       string
	Data           map[string]Value
}

func (v *ArrayValue) Type() string {
	return fmt.Sprintf("ARRAY OF %s", v.BaseType)
}
func (v *ArrayValue) String() string {
	return fmt.Sprintf("ARRAY[%v:%v] OF %s", v.Lowers, v.Uppers, v.BaseType)
}

// indexKey builds ArrayValue.Data's map key from a resolved index tuple.
func indexKey(indices []int64) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return strings.Join(parts, ",")
}

// Referent is the structural handle a pointer holds: a name (and, for
// fields and array elements, the path to reach them) that is looked up
// fresh every time the pointer is dereferenced, against whatever
// environment happens to be current at that moment. This is deliberate:
// spec.md §9 documents dangling pointers as an accepted hazard rather
// than a bug to design away, so a Referent is never a captured binding.
type Referent interface {
	isReferent()
}

// VarRef addresses a plain variable by name.
type VarRef struct{ Name string }

// FieldRef addresses one field of a record variable.
type FieldRef struct {
	VarName string
	Field   string
}

// ArrayRef addresses one element of an array variable.
type ArrayRef struct {
	VarName string
	Indices []int64
}

func (VarRef) isReferent()   {}
func (FieldRef) isReferent() {}
func (ArrayRef) isReferent() {}

// PointerValue holds a Referent, or nil for an unset pointer (the
// DECLARE-time default, and the result of a pointer variable that has
// never been assigned an address).
type PointerValue struct{ Referent Referent }

func (v *PointerValue) Type() string { return "POINTER" }
func (v *PointerValue) String() string {
	if v.Referent == nil {
		return "NIL"
	}
	switch r := v.Referent.(type) {
	case VarRef:
		return "^" + r.Name
	case FieldRef:
		return "^" + r.VarName + "." + r.Field
	case ArrayRef:
		return fmt.Sprintf("^%s%v", r.VarName, r.Indices)
	default:
		return "^?"
	}
}

// UnitValue is the result of a PROCEDURE call, or of a FUNCTION call that
// fell off the end of its body without executing a RETURN.
type UnitValue struct{}

func (v *UnitValue) Type() string   { return "UNIT" }
func (v *UnitValue) String() string { return "" }
