package evaluator

// binding is a named storage cell. Most variables use valueBinding; a
// BYREF field parameter uses fieldBinding so reads/writes route through
// the aliased record instead of a private copy. A BYREF variable
// parameter shares the caller's own binding object directly (see
// Interpreter.bindParam in evaluator.go) rather than needing a third
// binding kind.
type binding interface {
	get() Value
	set(Value)
	declaredType() string
}

type valueBinding struct {
	value Value
	typ   string
}

func (b *valueBinding) get() Value          { return b.value }
func (b *valueBinding) set(v Value)         { b.value = v }
func (b *valueBinding) declaredType() string { return b.typ }

type fieldBinding struct {
	record *RecordValue
	field  string
	typ    string
}

func (b *fieldBinding) get() Value          { return b.record.Fields[b.field] }
func (b *fieldBinding) set(v Value)         { b.record.Fields[b.field] = v }
func (b *fieldBinding) declaredType() string { return b.typ }

// Environment is one frame of variable bindings, chained to an outer
// frame. Call frames chain directly to the global frame: this language
// has no nested procedure/function definitions, so lookup is never more
// than two frames deep.
type Environment struct {
	bindings map[string]binding
	outer    *Environment
}

// NewEnvironment creates a frame chained to outer (nil for the global frame).
func NewEnvironment(outer *Environment) *Environment {
	return &Environment{bindings: make(map[string]binding), outer: outer}
}

func (e *Environment) lookup(name string) (binding, bool) {
	if b, ok := e.bindings[name]; ok {
		return b, true
	}
	if e.outer != nil {
		return e.outer.lookup(name)
	}
	return nil, false
}

// Get reads a variable's current value.
func (e *Environment) Get(name string) (Value, bool) {
	if b, ok := e.lookup(name); ok {
		return b.get(), true
	}
	return nil, false
}

// Set writes to an already-declared variable, following aliases.
func (e *Environment) Set(name string, v Value) bool {
	if b, ok := e.lookup(name); ok {
		b.set(v)
		return true
	}
	return false
}

// Declare introduces a new local variable holding v, with declared type
// typ (used later for assignment coercion).
func (e *Environment) Declare(name string, v Value, typ string) {
	e.bindings[name] = &valueBinding{value: v, typ: typ}
}

// DeclareBinding introduces a new local name that shares an existing
// binding object, used to wire up BYREF parameters.
func (e *Environment) DeclareBinding(name string, b binding) {
	e.bindings[name] = b
}

// Binding exposes the raw binding behind name, so a BYREF argument that is
// itself a plain variable can be passed straight through to the callee.
func (e *Environment) Binding(name string) (binding, bool) {
	return e.lookup(name)
}

// DeclaredType returns the type a variable was declared or parameter-bound
// with, used when coercing a later assignment.
func (e *Environment) DeclaredType(name string) (string, bool) {
	if b, ok := e.lookup(name); ok {
		return b.declaredType(), true
	}
	return "", false
}

// Has reports whether name is visible from this frame.
func (e *Environment) Has(name string) bool {
	_, ok := e.lookup(name)
	return ok
}
