package evaluator

import (
	"fmt"
	"strings"

	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/errors"
	"github.com/example/pseudo/internal/lexer"
)

// exec executes one statement in env, returning whether it (or a nested
// statement) hit a RETURN.
func (in *Interpreter) exec(env *Environment, stmt ast.Statement) execResult {
	switch s := stmt.(type) {
	case *ast.Declare:
		in.execDeclare(env, s)
		return normalResult
	case *ast.TypeDef:
		if _, dup := in.userTypes[s.Name]; dup {
			in.raise(errors.NameError, s.Pos(), "type %q already defined", s.Name)
		}
		in.userTypes[s.Name] = s
		return normalResult
	case *ast.Assign:
		in.execAssign(env, s)
		return normalResult
	case *ast.Output:
		in.execOutput(env, s)
		return normalResult
	case *ast.Input:
		in.execInput(env, s)
		return normalResult
	case *ast.If:
		return in.execIf(env, s)
	case *ast.While:
		return in.execWhile(env, s)
	case *ast.RepeatUntil:
		return in.execRepeatUntil(env, s)
	case *ast.For:
		return in.execFor(env, s)
	case *ast.CaseOf:
		return in.execCaseOf(env, s)
	case *ast.ProcedureDef:
		in.defineCallable(s.Name, &callable{name: s.Name, params: s.Params, body: s.Body}, s.Pos())
		return normalResult
	case *ast.FunctionDef:
		in.defineCallable(s.Name, &callable{name: s.Name, params: s.Params, body: s.Body, returnType: s.ReturnType, isFunction: true}, s.Pos())
		return normalResult
	case *ast.CallStmt:
		in.execCall(env, s.Call)
		return normalResult
	case *ast.Return:
		if s.Value == nil {
			return returning(&UnitValue{})
		}
		return returning(in.evalExpr(env, s.Value))
	default:
		in.raise(errors.TypeError, stmt.Pos(), "unhandled statement type %T", stmt)
		return normalResult
	}
}

// defineCallable registers a PROCEDURE/FUNCTION into the shared callable
// table. A second definition under the same name is a NameError, per
// SPEC_FULL.md's resolution of Open Question 4.
func (in *Interpreter) defineCallable(name string, c *callable, pos lexer.Position) {
	if _, dup := in.callables[name]; dup {
		in.raise(errors.NameError, pos, "%q is already defined", name)
	}
	in.callables[name] = c
}

func (in *Interpreter) execBlock(env *Environment, stmts []ast.Statement) execResult {
	for _, s := range stmts {
		if res := in.exec(env, s); res.returning {
			return res
		}
	}
	return normalResult
}

func (in *Interpreter) execDeclare(env *Environment, d *ast.Declare) {
	spec := parseTypeSpec(d.Type)
	switch spec.kind {
	case "pointer":
		env.Declare(d.Name, &PointerValue{}, d.Type)
	case "array":
		env.Declare(d.Name, &ArrayValue{Lowers: spec.lowers, Uppers: spec.uppers, BaseType: spec.arrayBase, Data: map[string]Value{}}, d.Type)
	default:
		if isBuiltinScalar(spec.scalarName) {
			env.Declare(d.Name, defaultValue(spec.scalarName), spec.scalarName)
			return
		}
		td, ok := in.userTypes[spec.scalarName]
		if !ok {
			in.raise(errors.NameError, d.Pos(), "unknown type %q", spec.scalarName)
		}
		if td.AliasBase != "" {
			env.Declare(d.Name, &PointerValue{}, spec.scalarName)
			return
		}
		env.Declare(d.Name, in.newRecord(td), spec.scalarName)
	}
}

func (in *Interpreter) newRecord(td *ast.TypeDef) *RecordValue {
	fields := make(map[string]Value, len(td.Fields))
	for _, f := range td.Fields {
		spec := parseTypeSpec(f.Type)
		switch spec.kind {
		case "pointer":
			fields[f.Name] = &PointerValue{}
		case "array":
			fields[f.Name] = &ArrayValue{Lowers: spec.lowers, Uppers: spec.uppers, BaseType: spec.arrayBase, Data: map[string]Value{}}
		default:
			if isBuiltinScalar(spec.scalarName) {
				fields[f.Name] = defaultValue(spec.scalarName)
			} else if nested, ok := in.userTypes[spec.scalarName]; ok && nested.AliasBase != "" {
				fields[f.Name] = &PointerValue{}
			} else if ok {
				fields[f.Name] = in.newRecord(nested)
			} else {
				fields[f.Name] = &UnitValue{}
			}
		}
	}
	return &RecordValue{TypeName: td.Name, Fields: fields}
}

func (in *Interpreter) execAssign(env *Environment, a *ast.Assign) {
	value := in.evalExpr(env, a.Value)

	switch target := a.Target.(type) {
	case *ast.Var:
		typ, ok := env.DeclaredType(target.Name)
		if !ok {
			in.raise(errors.NameError, a.Pos(), "variable %q used before declaration", target.Name)
		}
		coerced := in.coerceOrFail(value, typ, a.Pos(), target.Name)
		env.Set(target.Name, coerced)

	case *ast.FieldAccess:
		baseVar, ok := target.Var.(*ast.Var)
		if !ok {
			in.raise(errors.TypeError, a.Pos(), "unsupported field assignment target")
		}
		rv := in.expectRecord(env, baseVar.Name, a.Pos())
		fieldType := in.fieldType(rv.TypeName, target.Field, a.Pos())
		rv.Fields[target.Field] = in.coerceOrFail(value, fieldType, a.Pos(), target.Field)

	case *ast.ArrayAccess:
		av := in.expectArray(env, target.Name, a.Pos())
		key := in.resolveIndices(env, av, target.Indices, a.Pos(), target.Name)
		av.Data[key] = in.coerceOrFail(value, av.BaseType, a.Pos(), target.Name)

	case *ast.Dereference:
		in.setThroughPointer(env, target, value, a.Pos())

	default:
		in.raise(errors.TypeError, a.Pos(), "unsupported assignment target")
	}
}

func (in *Interpreter) coerceOrFail(value Value, typ string, pos lexer.Position, name string) Value {
	coerced, ok := convert(value, typ)
	if !ok {
		in.raise(errors.TypeError, pos, "cannot convert %s to %s for %q", value.Type(), typ, name)
	}
	return coerced
}

func (in *Interpreter) fieldType(typeName, field string, pos lexer.Position) string {
	td, ok := in.userTypes[typeName]
	if !ok {
		in.raise(errors.TypeError, pos, "unknown structured type %q", typeName)
	}
	for _, f := range td.Fields {
		if f.Name == field {
			return f.Type
		}
	}
	in.raise(errors.NameError, pos, "%q is not a field of type %q", field, typeName)
	return ""
}

func (in *Interpreter) execOutput(env *Environment, o *ast.Output) {
	parts := make([]string, len(o.Values))
	for i, expr := range o.Values {
		parts[i] = in.evalExpr(env, expr).String()
	}
	fmt.Fprintln(in.stdout, strings.Join(parts, " "))
}

func (in *Interpreter) execInput(env *Environment, i *ast.Input) {
	line, err := in.stdin.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		in.raise(errors.InputError, i.Pos(), "no input available")
	}

	switch target := i.Target.(type) {
	case *ast.Var:
		typ, ok := env.DeclaredType(target.Name)
		if !ok {
			in.raise(errors.NameError, i.Pos(), "variable %q used before declaration", target.Name)
		}
		env.Set(target.Name, in.parseInputValue(line, typ, i.Pos()))
	case *ast.FieldAccess:
		baseVar, _ := target.Var.(*ast.Var)
		rv := in.expectRecord(env, baseVar.Name, i.Pos())
		typ := in.fieldType(rv.TypeName, target.Field, i.Pos())
		rv.Fields[target.Field] = in.parseInputValue(line, typ, i.Pos())
	case *ast.ArrayAccess:
		av := in.expectArray(env, target.Name, i.Pos())
		key := in.resolveIndices(env, av, target.Indices, i.Pos(), target.Name)
		av.Data[key] = in.parseInputValue(line, av.BaseType, i.Pos())
	default:
		in.raise(errors.TypeError, i.Pos(), "unsupported INPUT target")
	}
}

func (in *Interpreter) parseInputValue(raw, typ string, pos lexer.Position) Value {
	switch typ {
	case "BOOLEAN":
		switch raw {
		case "TRUE":
			return &BooleanValue{Value: true}
		case "FALSE":
			return &BooleanValue{Value: false}
		default:
			in.raise(errors.InputError, pos, "invalid BOOLEAN input %q (expected TRUE or FALSE)", raw)
		}
	case "CHAR":
		if len(raw) != 1 {
			in.raise(errors.InputError, pos, "CHAR input must be a single character, got %q", raw)
		}
		return &CharValue{Value: raw[0]}
	}
	v, ok := convert(&StringValue{Value: raw}, typ)
	if !ok {
		in.raise(errors.InputError, pos, "invalid %s input %q", typ, raw)
	}
	return v
}

func (in *Interpreter) execIf(env *Environment, s *ast.If) execResult {
	cond := in.expectBool(in.evalExpr(env, s.Condition), s.Pos())
	if cond {
		return in.execBlock(env, s.Then)
	}
	return in.execBlock(env, s.Else)
}

func (in *Interpreter) execWhile(env *Environment, s *ast.While) execResult {
	for in.expectBool(in.evalExpr(env, s.Condition), s.Pos()) {
		if res := in.execBlock(env, s.Body); res.returning {
			return res
		}
	}
	return normalResult
}

func (in *Interpreter) execRepeatUntil(env *Environment, s *ast.RepeatUntil) execResult {
	for {
		if res := in.execBlock(env, s.Body); res.returning {
			return res
		}
		if in.expectBool(in.evalExpr(env, s.Condition), s.Pos()) {
			return normalResult
		}
	}
}

func (in *Interpreter) execFor(env *Environment, s *ast.For) execResult {
	start := in.expectInt64(in.evalExpr(env, s.Start), s.Pos())
	end := in.expectInt64(in.evalExpr(env, s.End), s.Pos())

	if !env.Has(s.VarName) {
		env.Declare(s.VarName, &IntegerValue{}, "INTEGER")
	}
	for i := start; i <= end; i++ {
		env.Set(s.VarName, &IntegerValue{Value: i})
		if res := in.execBlock(env, s.Body); res.returning {
			return res
		}
	}
	return normalResult
}

func (in *Interpreter) execCaseOf(env *Environment, s *ast.CaseOf) execResult {
	subject := in.evalExpr(env, s.Subject)
	for _, arm := range s.Arms {
		label := in.evalExpr(env, arm.Label)
		if valuesEqual(subject, label) {
			return in.exec(env, arm.Statement)
		}
	}
	if s.Otherwise != nil {
		return in.exec(env, s.Otherwise)
	}
	return normalResult
}

func valuesEqual(a, b Value) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
	}
	return a.String() == b.String() && a.Type() == b.Type()
}
