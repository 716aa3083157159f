package evaluator

import (
	"math/rand"
	"strings"

	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/errors"
)

var builtinArity = map[string]int{
	"RIGHT": 2, "LENGTH": 1, "MID": 3,
	"LCASE": 1, "UCASE": 1, "INT": 1, "RAND": 1,
}

// evalBuiltin dispatches one of the fixed string/numeric intrinsics, per
// original_source's inline builtin handling inside its Call case. Builtin
// names are matched case-insensitively, matching the original's
// `name.upper()` check.
func (in *Interpreter) evalBuiltin(env *Environment, call *ast.Call) (Value, bool) {
	name := strings.ToUpper(call.Name)
	want, known := builtinArity[name]
	if !known {
		return nil, false
	}
	if len(call.Args) != want {
		in.raise(errors.TypeError, call.Pos(), "%s expects %d argument(s), got %d", name, want, len(call.Args))
	}

	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		args[i] = in.evalExpr(env, a)
	}

	switch name {
	case "RIGHT":
		s := in.expectString(call, args, 0)
		n := in.expectInt(call, args, 1)
		if n < 0 {
			in.raise(errors.RangeError, call.Pos(), "RIGHT expects a non-negative length")
		}
		if int(n) >= len(s) {
			return &StringValue{Value: s}, true
		}
		return &StringValue{Value: s[len(s)-int(n):]}, true

	case "LENGTH":
		s := in.expectString(call, args, 0)
		return &IntegerValue{Value: int64(len(s))}, true

	case "MID":
		s := in.expectString(call, args, 0)
		start := in.expectInt(call, args, 1)
		length := in.expectInt(call, args, 2)
		if start < 1 {
			in.raise(errors.TypeError, call.Pos(), "MID start must be >= 1")
		}
		from := int(start) - 1
		if from > len(s) {
			return &StringValue{Value: ""}, true
		}
		to := from + int(length)
		if to > len(s) {
			to = len(s)
		}
		if to < from {
			to = from
		}
		return &StringValue{Value: s[from:to]}, true

	case "LCASE":
		c := in.expectChar(call, args, 0)
		return &CharValue{Value: byte(strings.ToLower(string(c))[0])}, true

	case "UCASE":
		c := in.expectChar(call, args, 0)
		return &CharValue{Value: byte(strings.ToUpper(string(c))[0])}, true

	case "INT":
		f, ok := asFloat(args[0])
		if !ok {
			in.raise(errors.TypeError, call.Pos(), "INT expects a numeric argument")
		}
		return &IntegerValue{Value: int64(f)}, true

	case "RAND":
		upper, ok := asFloat(args[0])
		if !ok {
			in.raise(errors.TypeError, call.Pos(), "RAND expects a numeric argument")
		}
		return &RealValue{Value: rand.Float64() * upper}, true
	}

	return nil, false
}

func (in *Interpreter) expectString(call *ast.Call, args []Value, idx int) string {
	s, ok := args[idx].(*StringValue)
	if !ok {
		in.raise(errors.TypeError, call.Pos(), "%s expects a STRING argument", call.Name)
	}
	return s.Value
}

func (in *Interpreter) expectInt(call *ast.Call, args []Value, idx int) int64 {
	f, ok := asFloat(args[idx])
	if !ok {
		in.raise(errors.TypeError, call.Pos(), "%s expects a numeric argument", call.Name)
	}
	return int64(f)
}

func (in *Interpreter) expectChar(call *ast.Call, args []Value, idx int) byte {
	switch v := args[idx].(type) {
	case *CharValue:
		return v.Value
	case *StringValue:
		if len(v.Value) == 1 {
			return v.Value[0]
		}
	}
	in.raise(errors.TypeError, call.Pos(), "%s expects a single character", call.Name)
	return 0
}
