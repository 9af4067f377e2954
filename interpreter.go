// interpreter.go — public surface of the jive runtime.
//
// This file holds the runtime value model (Value, ValueTag, constructors),
// lexical environments (Env) with per-binding mutability, and the Interpreter
// entry points. The tree-walking evaluator itself lives in
// interpreter_exec.go; builtins are installed by builtin_core.go.
//
// Scoping model: environments form a chain via parent. The interpreter owns
// exactly one well-known frame, Global, created once at construction and
// seeded with the constants true/false/null and the native builtins before
// any user code runs. Function values capture their declaring Env by
// reference, so closures observe later mutations of that scope.
//
// All entry points return (Value, error). Failures are *RuntimeError values
// carrying a 1-based line and 0-based column; hosts render them (optionally
// through WrapErrorWithSource) and decide whether to continue.
package jive

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull   ValueTag = iota // null (no payload)
	VTBool                   // bool
	VTInt                    // int64
	VTStr                    // string
	VTObject                 // *Object (insertion-ordered string map)
	VTArray                  // *ArrayObject
	VTFun                    // *Fun (user closure)
	VTNative                 // *Native (host-provided callable)
)

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds (see ValueTag).
type Value struct {
	Tag  ValueTag
	Data any
}

// Null is the singleton null Value.
var Null = Value{Tag: VTNull}

// Primitive constructors.
func Bool(b bool) Value           { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value           { return Value{Tag: VTInt, Data: n} }
func Str(s string) Value          { return Value{Tag: VTStr, Data: s} }
func ObjVal(o *Object) Value      { return Value{Tag: VTObject, Data: o} }
func ArrVal(a *ArrayObject) Value { return Value{Tag: VTArray, Data: a} }
func FunVal(f *Fun) Value         { return Value{Tag: VTFun, Data: f} }

// String renders a short debug representation; FormatValue in printer.go is
// the user-facing renderer.
func (v Value) String() string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTObject:
		return "<object>"
	case VTArray:
		return fmt.Sprintf("<array len=%d>", len(v.Data.(*ArrayObject).Items))
	case VTFun:
		return fmt.Sprintf("<fn %s>", v.Data.(*Fun).Name)
	case VTNative:
		return fmt.Sprintf("<native fn %s>", v.Data.(*Native).Name)
	default:
		return "<unknown>"
	}
}

// TypeName reports the language-level type tag (what the `type` builtin sees).
func (v Value) TypeName() string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return "bool"
	case VTInt:
		return "int"
	case VTStr:
		return "str"
	case VTObject:
		return "object"
	case VTArray:
		return "array"
	case VTFun, VTNative:
		return "fn"
	default:
		return "unknown"
	}
}

// Truthy maps a Value to a boolean for conditionals. Falsy values are null,
// false, 0 and ""; everything else (objects, arrays and functions included)
// is truthy.
func Truthy(v Value) bool {
	switch v.Tag {
	case VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTInt:
		return v.Data.(int64) != 0
	case VTStr:
		return v.Data.(string) != ""
	default:
		return true
	}
}

// Object is an insertion-ordered string-keyed map. Keys tracks first-set
// order; order-sensitive consumers (the printer) iterate Keys.
type Object struct {
	Entries map[string]Value
	Keys    []string
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{Entries: map[string]Value{}}
}

// Set stores key=v, appending key to the order on first insertion.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.Entries[key]; !ok {
		o.Keys = append(o.Keys, key)
	}
	o.Entries[key] = v
}

// Get retrieves key; missing keys read as null.
func (o *Object) Get(key string) Value {
	if v, ok := o.Entries[key]; ok {
		return v
	}
	return Null
}

// ArrayObject boxes array storage so element assignment and push mutate in
// place across all holders of the same array value.
type ArrayObject struct {
	Items []Value
}

// Fun is a user function: parameter names, body, and the environment captured
// at declaration time (closures capture by reference, not by copy).
type Fun struct {
	Name   string
	Params []string
	Body   []Stmt
	Env    *Env
}

// NativeImpl is the implementation signature for host builtins. Arguments
// arrive fully evaluated, left to right.
type NativeImpl func(ip *Interpreter, args []Value) (Value, error)

// Native is a host-provided callable.
type Native struct {
	Name string
	Impl NativeImpl
}

// NativeVal wraps a host function into a Value.
func NativeVal(name string, impl NativeImpl) Value {
	return Value{Tag: VTNative, Data: &Native{Name: name, Impl: impl}}
}

// ----- environments -----

// binding pairs a value with its mutability flag.
type binding struct {
	val     Value
	mutable bool
}

// Env is a lexical scope frame. Lookups and assignments walk parent-ward;
// declarations always land in the current frame.
type Env struct {
	parent *Env
	table  map[string]binding
}

// NewEnv creates a scope frame with the given parent (nil for the global).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: map[string]binding{}}
}

// Child creates a nested scope whose parent is e.
func (e *Env) Child() *Env { return NewEnv(e) }

// Declare binds name in this frame. Redeclaring a name that already exists in
// this frame is an error; shadowing a parent binding is allowed.
func (e *Env) Declare(name string, v Value, mutable bool) error {
	if _, ok := e.table[name]; ok {
		return fmt.Errorf("redeclaration of variable: %s", name)
	}
	e.table[name] = binding{val: v, mutable: mutable}
	return nil
}

// Assign updates the nearest visible binding of name. It never implicitly
// declares, and refuses to touch const bindings.
func (e *Env) Assign(name string, v Value) error {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.table[name]; ok {
			if !b.mutable {
				return fmt.Errorf("cannot assign to const: %s", name)
			}
			s.table[name] = binding{val: v, mutable: true}
			return nil
		}
	}
	return fmt.Errorf("undefined variable: %s", name)
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, error) {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.table[name]; ok {
			return b.val, nil
		}
	}
	return Value{}, fmt.Errorf("undefined variable: %s", name)
}

// ----- runtime errors -----

// RuntimeError represents an execution-time failure with a source location.
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ----- interpreter -----

// Interpreter owns the Global environment and evaluates programs against it.
type Interpreter struct {
	Global *Env
}

// NewInterpreter builds a ready-to-use engine: Global is created once and
// seeded with constants and natives (builtin_core.go) before any user code.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{Global: NewEnv(nil)}
	registerCoreBuiltins(ip)
	return ip
}

// EvalSource parses and evaluates source in Global. Effects (declarations,
// assignments) persist across calls, which is what the REPL wants; the file
// runner uses one interpreter per process so the distinction never shows.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	prog, err := ParseSource(src)
	if err != nil {
		return Null, err
	}
	return ip.EvalProgram(prog, ip.Global)
}

// EvalProgram evaluates a parsed program in the provided environment.
func (ip *Interpreter) EvalProgram(prog *Program, env *Env) (Value, error) {
	return ip.eval(prog, env)
}
