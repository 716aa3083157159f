package evaluator

import (
	"bufio"
	"fmt"
	"io"

	"github.com/example/pseudo/internal/ast"
	"github.com/example/pseudo/internal/errors"
	"github.com/example/pseudo/internal/lexer"
)

// callable is a registered PROCEDURE or FUNCTION. The two share one
// table keyed by name, per SPEC_FULL.md's Open Question 4 resolution:
// defining a second callable under an already-used name is a NameError
// raised at definition time, not at call time.
type callable struct {
	name       string
	params     []ast.Param
	body       []ast.Statement
	returnType string // "" for a PROCEDURE
	isFunction bool
}

// Interpreter holds all state for one program run: the global frame, the
// callable and record-type tables, and the I/O streams OUTPUT/INPUT read
// and write.
type Interpreter struct {
	global    *Environment
	callables map[string]*callable
	userTypes map[string]*ast.TypeDef
	stack     *callStack

	stdout io.Writer
	stdin  *bufio.Reader

	source, file string

	Trace  bool
	Tracer func(line int, text string)
}

// New creates an Interpreter reading program text from source (used for
// error context) and wiring OUTPUT/INPUT to the given streams.
func New(source, file string, stdin io.Reader, stdout io.Writer) *Interpreter {
	return &Interpreter{
		global:    NewEnvironment(nil),
		callables: make(map[string]*callable),
		userTypes: make(map[string]*ast.TypeDef),
		stack:     newCallStack(defaultMaxCallDepth),
		stdout:    stdout,
		stdin:     bufio.NewReader(stdin),
		source:    source,
		file:      file,
	}
}

// runtimePanic carries a structured diagnostic out of deeply nested
// eval/exec calls via panic/recover, the same unwind technique the parser
// uses for syntax errors.
type runtimePanic struct {
	err *errors.Error
}

func (in *Interpreter) raise(kind errors.Kind, pos lexer.Position, format string, args ...interface{}) {
	panic(&runtimePanic{errors.New(kind, pos, fmt.Sprintf(format, args...), in.source, in.file)})
}

// Run executes prog from a fresh global frame, returning the first
// diagnostic encountered (lexing/parsing is assumed to already have
// succeeded by this point).
func (in *Interpreter) Run(prog *ast.Program) (err *errors.Error) {
	defer func() {
		if r := recover(); r != nil {
			rp, ok := r.(*runtimePanic)
			if !ok {
				panic(r)
			}
			err = rp.err
		}
	}()

	for _, stmt := range prog.Statements {
		if in.Trace && in.Tracer != nil {
			in.Tracer(stmt.Pos().Line, stmt.String())
		}
		if res := in.exec(in.global, stmt); res.returning {
			break // a bare RETURN at top level simply ends the program
		}
	}
	return nil
}

// execResult threads RETURN out of nested statement execution explicitly,
// per SPEC_FULL.md's redesign of the original's exception-based control
// flow (spec.md §9).
type execResult struct {
	returning bool
	value     Value
}

var normalResult = execResult{}

func returning(v Value) execResult {
	return execResult{returning: true, value: v}
}

// execCall runs a PROCEDURE or FUNCTION call and returns its result value
// (UnitValue for a procedure, or a function that fell through without a
// RETURN).
func (in *Interpreter) execCall(env *Environment, call *ast.Call) Value {
	if v, ok := in.evalBuiltin(env, call); ok {
		return v
	}

	fn, ok := in.callables[call.Name]
	if !ok {
		in.raise(errors.NameError, call.Pos(), "unknown procedure or function %q", call.Name)
	}
	if len(call.Args) != len(fn.params) {
		in.raise(errors.TypeError, call.Pos(), "%s expects %d argument(s), got %d", call.Name, len(fn.params), len(call.Args))
	}

	if !in.stack.push(call.Name) {
		in.raise(errors.RangeError, call.Pos(), "%s", in.stack.overflowMessage(call.Name))
	}
	defer in.stack.pop()

	frame := NewEnvironment(in.global)
	for i, param := range fn.params {
		in.bindParam(env, frame, param, call.Args[i], call.Pos())
	}

	result := execResult{}
	for _, stmt := range fn.body {
		result = in.exec(frame, stmt)
		if result.returning {
			break
		}
	}

	if !fn.isFunction {
		return &UnitValue{}
	}
	if !result.returning || result.value == nil {
		return &UnitValue{}
	}
	coerced, ok := convert(result.value, fn.returnType)
	if !ok {
		in.raise(errors.TypeError, call.Pos(), "cannot return %s as %s from %s", result.value.Type(), fn.returnType, call.Name)
	}
	return coerced
}

// bindParam binds one actual argument into frame under param's name,
// sharing the caller's binding for BYREF and copying a coerced value for
// BYVAL (the default).
func (in *Interpreter) bindParam(callerEnv, frame *Environment, param ast.Param, argExpr ast.Expression, pos lexer.Position) {
	if !param.ByRef {
		val := in.evalExpr(callerEnv, argExpr)
		coerced, ok := convert(val, param.Type)
		if !ok {
			in.raise(errors.TypeError, pos, "cannot pass %s as %s parameter %q", val.Type(), param.Type, param.Name)
		}
		frame.Declare(param.Name, coerced, param.Type)
		return
	}

	switch target := argExpr.(type) {
	case *ast.Var:
		b, ok := callerEnv.Binding(target.Name)
		if !ok {
			in.raise(errors.NameError, pos, "variable %q not declared for BYREF", target.Name)
		}
		frame.DeclareBinding(param.Name, b)
	case *ast.FieldAccess:
		baseVar, ok := target.Var.(*ast.Var)
		if !ok {
			in.raise(errors.TypeError, pos, "BYREF requires a variable or record field")
		}
		rv := in.expectRecord(callerEnv, baseVar.Name, pos)
		frame.DeclareBinding(param.Name, &fieldBinding{record: rv, field: target.Field, typ: param.Type})
	default:
		in.raise(errors.TypeError, pos, "BYREF requires a variable or record field")
	}
}

func (in *Interpreter) expectRecord(env *Environment, name string, pos lexer.Position) *RecordValue {
	val, ok := env.Get(name)
	if !ok {
		in.raise(errors.NameError, pos, "variable %q was not declared", name)
	}
	rv, ok := val.(*RecordValue)
	if !ok {
		in.raise(errors.TypeError, pos, "%q is not a structured variable", name)
	}
	return rv
}
