package evaluator

import (
	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/errors"
	"github.com/example/pseudo/internal/lexer"
)

// evalExpr evaluates expr in env to a runtime Value.
func (in *Interpreter) evalExpr(env *Environment, expr ast.Expression) Value {
	switch e := expr.(type) {
	case *ast.Number:
		if e.IsReal {
			return &RealValue{Value: e.Value}
		}
		return &IntegerValue{Value: int64(e.Value)}

	case *ast.String:
		return &StringValue{Value: e.Value}

	case *ast.Var:
		v, ok := env.Get(e.Name)
		if !ok {
			in.raise(errors.NameError, e.Pos(), "variable %q used before declaration", e.Name)
		}
		return v

	case *ast.BinaryOp:
		return in.evalBinaryOp(env, e)

	case *ast.UnaryOp:
		return in.evalUnaryOp(env, e)

	case *ast.FieldAccess:
		baseVar, ok := e.Var.(*ast.Var)
		if !ok {
			in.raise(errors.TypeError, e.Pos(), "unsupported field access target")
		}
		rv := in.expectRecord(env, baseVar.Name, e.Pos())
		val, ok := rv.Fields[e.Field]
		if !ok {
			in.raise(errors.NameError, e.Pos(), "%q is not a field of type %q", e.Field, rv.TypeName)
		}
		return val

	case *ast.ArrayAccess:
		av := in.expectArray(env, e.Name, e.Pos())
		key := in.resolveIndices(env, av, e.Indices, e.Pos(), e.Name)
		if val, ok := av.Data[key]; ok {
			return val
		}
		return defaultValue(av.BaseType)

	case *ast.AddressOf:
		return &PointerValue{Referent: in.buildReferent(env, e.Target, e.Pos())}

	case *ast.Dereference:
		return in.derefRead(env, e, e.Pos())

	case *ast.Call:
		return in.execCall(env, e)

	default:
		in.raise(errors.TypeError, expr.Pos(), "unhandled expression type %T", expr)
		return nil
	}
}

func (in *Interpreter) evalBinaryOp(env *Environment, b *ast.BinaryOp) Value {
	switch b.Operator {
	case "AND":
		left := in.expectBool(in.evalExpr(env, b.Left), b.Pos())
		if !left {
			return &BooleanValue{Value: false}
		}
		return &BooleanValue{Value: in.expectBool(in.evalExpr(env, b.Right), b.Pos())}
	case "OR":
		left := in.expectBool(in.evalExpr(env, b.Left), b.Pos())
		if left {
			return &BooleanValue{Value: true}
		}
		return &BooleanValue{Value: in.expectBool(in.evalExpr(env, b.Right), b.Pos())}
	}

	left := in.evalExpr(env, b.Left)
	right := in.evalExpr(env, b.Right)
	return in.applyOp(b.Operator, left, right, b.Pos())
}

// applyOp implements the arithmetic, comparison, and concatenation
// operators. INTEGER/REAL mix promotes to REAL, matching original_source's
// numeric-tower coercion.
func (in *Interpreter) applyOp(op string, left, right Value, pos lexer.Position) Value {
	switch op {
	case "&":
		return &StringValue{Value: left.String() + right.String()}
	case "+", "-", "*", "/":
		return in.applyArith(op, left, right, pos)
	case "=", "<>", "<", ">", "<=", ">=":
		return in.applyCompare(op, left, right, pos)
	}
	in.raise(errors.TypeError, pos, "unknown operator %q", op)
	return nil
}

func (in *Interpreter) applyArith(op string, left, right Value, pos lexer.Position) Value {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		in.raise(errors.TypeError, pos, "operator %q requires numeric operands, got %s and %s", op, left.Type(), right.Type())
	}

	_, leftReal := left.(*RealValue)
	_, rightReal := right.(*RealValue)
	real := leftReal || rightReal

	var result float64
	switch op {
	case "+":
		result = lf + rf
	case "-":
		result = lf - rf
	case "*":
		result = lf * rf
	case "/":
		if rf == 0 {
			in.raise(errors.RangeError, pos, "division by zero")
		}
		result = lf / rf
		real = true // division always yields REAL, matching original_source
	}

	if real {
		return &RealValue{Value: result}
	}
	return &IntegerValue{Value: int64(result)}
}

func (in *Interpreter) applyCompare(op string, left, right Value, pos lexer.Position) Value {
	if lf, lok := asFloat(left); lok {
		if rf, rok := asFloat(right); rok {
			return &BooleanValue{Value: compareFloat(op, lf, rf)}
		}
	}

	if ls, ok := left.(*StringValue); ok {
		if rs, ok := right.(*StringValue); ok {
			return &BooleanValue{Value: compareString(op, ls.Value, rs.Value)}
		}
	}

	if lb, ok := left.(*BooleanValue); ok {
		if rb, ok := right.(*BooleanValue); ok {
			switch op {
			case "=":
				return &BooleanValue{Value: lb.Value == rb.Value}
			case "<>":
				return &BooleanValue{Value: lb.Value != rb.Value}
			}
		}
	}

	if ld, ok := left.(*DateValue); ok {
		if rd, ok := right.(*DateValue); ok {
			return &BooleanValue{Value: compareFloat(op, float64(ld.Value.Unix()), float64(rd.Value.Unix()))}
		}
	}

	in.raise(errors.TypeError, pos, "cannot compare %s with %s using %q", left.Type(), right.Type(), op)
	return nil
}

func compareFloat(op string, l, r float64) bool {
	switch op {
	case "=":
		return l == r
	case "<>":
		return l != r
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func compareString(op string, l, r string) bool {
	switch op {
	case "=":
		return l == r
	case "<>":
		return l != r
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func (in *Interpreter) evalUnaryOp(env *Environment, u *ast.UnaryOp) Value {
	switch u.Operator {
	case "NOT":
		return &BooleanValue{Value: !in.expectBool(in.evalExpr(env, u.Operand), u.Pos())}
	case "-":
		v := in.evalExpr(env, u.Operand)
		if r, ok := v.(*RealValue); ok {
			return &RealValue{Value: -r.Value}
		}
		if i, ok := v.(*IntegerValue); ok {
			return &IntegerValue{Value: -i.Value}
		}
		in.raise(errors.TypeError, u.Pos(), "unary - requires a numeric operand, got %s", v.Type())
	}
	in.raise(errors.TypeError, u.Pos(), "unknown unary operator %q", u.Operator)
	return nil
}

func (in *Interpreter) expectBool(v Value, pos lexer.Position) bool {
	b, ok := v.(*BooleanValue)
	if !ok {
		in.raise(errors.TypeError, pos, "expected BOOLEAN, got %s", v.Type())
	}
	return b.Value
}

func (in *Interpreter) expectInt64(v Value, pos lexer.Position) int64 {
	f, ok := asFloat(v)
	if !ok {
		in.raise(errors.TypeError, pos, "expected a numeric value, got %s", v.Type())
	}
	return int64(f)
}

func (in *Interpreter) expectArray(env *Environment, name string, pos lexer.Position) *ArrayValue {
	val, ok := env.Get(name)
	if !ok {
		in.raise(errors.NameError, pos, "variable %q was not declared", name)
	}
	av, ok := val.(*ArrayValue)
	if !ok {
		in.raise(errors.TypeError, pos, "%q is not an array", name)
	}
	return av
}

// resolveIndices evaluates an ArrayAccess's index expressions, bounds-checks
// each against av's declared dimensions, and returns the Data map key.
func (in *Interpreter) resolveIndices(env *Environment, av *ArrayValue, exprs []ast.Expression, pos lexer.Position, name string) string {
	if len(exprs) != len(av.Lowers) {
		in.raise(errors.RangeError, pos, "%s expects %d index(es), got %d", name, len(av.Lowers), len(exprs))
	}
	indices := make([]int64, len(exprs))
	for i, expr := range exprs {
		idx := in.expectInt64(in.evalExpr(env, expr), pos)
		if idx < av.Lowers[i] || idx > av.Uppers[i] {
			in.raise(errors.RangeError, pos, "index %d out of bounds [%d:%d] for %s", idx, av.Lowers[i], av.Uppers[i], name)
		}
		indices[i] = idx
	}
	return indexKey(indices)
}

// buildReferent turns an AddressOf's target expression into the structural
// handle a PointerValue carries.
func (in *Interpreter) buildReferent(env *Environment, target ast.Expression, pos lexer.Position) Referent {
	switch t := target.(type) {
	case *ast.Var:
		if !env.Has(t.Name) {
			in.raise(errors.NameError, pos, "variable %q was not declared", t.Name)
		}
		return VarRef{Name: t.Name}
	case *ast.FieldAccess:
		baseVar, ok := t.Var.(*ast.Var)
		if !ok {
			in.raise(errors.TypeError, pos, "cannot take the address of this expression")
		}
		return FieldRef{VarName: baseVar.Name, Field: t.Field}
	case *ast.ArrayAccess:
		av := in.expectArray(env, t.Name, pos)
		indices := make([]int64, len(t.Indices))
		for i, expr := range t.Indices {
			indices[i] = in.expectInt64(in.evalExpr(env, expr), pos)
			if indices[i] < av.Lowers[i] || indices[i] > av.Uppers[i] {
				in.raise(errors.RangeError, pos, "index %d out of bounds [%d:%d] for %s", indices[i], av.Lowers[i], av.Uppers[i], t.Name)
			}
		}
		return ArrayRef{VarName: t.Name, Indices: indices}
	default:
		in.raise(errors.TypeError, pos, "cannot take the address of this expression")
		return nil
	}
}

// derefRead resolves a pointer's Referent against env, the environment
// current at the moment of the dereference rather than the one active
// when the pointer was created; a Referent naming a variable that has
// since gone out of scope, or whose shape has changed, surfaces as the
// dangling-pointer NameError/TypeError the language intentionally allows.
func (in *Interpreter) derefRead(env *Environment, d *ast.Dereference, pos lexer.Position) Value {
	ptr := in.expectPointer(env, d.Pointer, pos)
	if ptr.Referent == nil {
		in.raise(errors.NameError, pos, "dereference of an unset pointer")
	}

	switch r := ptr.Referent.(type) {
	case VarRef:
		v, ok := env.Get(r.Name)
		if !ok {
			in.raise(errors.NameError, pos, "dangling pointer: %q no longer exists", r.Name)
		}
		return v
	case FieldRef:
		rv := in.expectRecord(env, r.VarName, pos)
		v, ok := rv.Fields[r.Field]
		if !ok {
			in.raise(errors.NameError, pos, "dangling pointer: field %q no longer exists", r.Field)
		}
		return v
	case ArrayRef:
		av := in.expectArray(env, r.VarName, pos)
		key := indexKey(r.Indices)
		if v, ok := av.Data[key]; ok {
			return v
		}
		return defaultValue(av.BaseType)
	}
	in.raise(errors.TypeError, pos, "unresolvable pointer referent")
	return nil
}

func (in *Interpreter) setThroughPointer(env *Environment, d *ast.Dereference, value Value, pos lexer.Position) {
	ptr := in.expectPointer(env, d.Pointer, pos)
	if ptr.Referent == nil {
		in.raise(errors.NameError, pos, "dereference of an unset pointer")
	}

	switch r := ptr.Referent.(type) {
	case VarRef:
		typ, ok := env.DeclaredType(r.Name)
		if !ok {
			in.raise(errors.NameError, pos, "dangling pointer: %q no longer exists", r.Name)
		}
		env.Set(r.Name, in.coerceOrFail(value, typ, pos, r.Name))
	case FieldRef:
		rv := in.expectRecord(env, r.VarName, pos)
		fieldType := in.fieldType(rv.TypeName, r.Field, pos)
		rv.Fields[r.Field] = in.coerceOrFail(value, fieldType, pos, r.Field)
	case ArrayRef:
		av := in.expectArray(env, r.VarName, pos)
		av.Data[indexKey(r.Indices)] = in.coerceOrFail(value, av.BaseType, pos, r.VarName)
	default:
		in.raise(errors.TypeError, pos, "unresolvable pointer referent")
	}
}

func (in *Interpreter) expectPointer(env *Environment, expr ast.Expression, pos lexer.Position) *PointerValue {
	v := in.evalExpr(env, expr)
	p, ok := v.(*PointerValue)
	if !ok {
		in.raise(errors.TypeError, pos, "expected a pointer, got %s", v.Type())
	}
	return p
}
