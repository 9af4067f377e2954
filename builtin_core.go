// builtin_core.go — native builtins and global constants.
//
// registerCoreBuiltins seeds the Global environment exactly once, from
// NewInterpreter, before any user code runs. true/false/null are ordinary
// immutable bindings, which is why the grammar has no literal forms for them.
package jive

import (
	"fmt"
	"strings"
	"time"
)

func registerCoreBuiltins(ip *Interpreter) {
	declare := func(name string, v Value) {
		// Global is empty at this point; Declare cannot fail.
		_ = ip.Global.Declare(name, v, false)
	}

	declare("true", Bool(true))
	declare("false", Bool(false))
	declare("null", Null)

	declare("print", NativeVal("print", builtinPrint))
	declare("len", NativeVal("len", builtinLen))
	declare("push", NativeVal("push", builtinPush))
	declare("keys", NativeVal("keys", builtinKeys))
	declare("str", NativeVal("str", builtinStr))
	declare("type", NativeVal("type", builtinType))
	declare("time", NativeVal("time", builtinTime))
}

func wantArgs(name string, args []Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

// print writes its arguments space-separated to stdout, strings unquoted.
func builtinPrint(_ *Interpreter, args []Value) (Value, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, stringify(a))
	}
	fmt.Println(strings.Join(parts, " "))
	return Null, nil
}

func builtinLen(_ *Interpreter, args []Value) (Value, error) {
	if err := wantArgs("len", args, 1); err != nil {
		return Null, err
	}
	switch v := args[0]; v.Tag {
	case VTStr:
		return Int(int64(len(v.Data.(string)))), nil
	case VTArray:
		return Int(int64(len(v.Data.(*ArrayObject).Items))), nil
	case VTObject:
		return Int(int64(len(v.Data.(*Object).Keys))), nil
	default:
		return Null, fmt.Errorf("len expects a str, array or object, got %s", v.TypeName())
	}
}

// push appends its remaining arguments to an array in place and returns the
// array, so pushes can be chained.
func builtinPush(_ *Interpreter, args []Value) (Value, error) {
	if len(args) < 2 {
		return Null, fmt.Errorf("push expects an array and at least one value")
	}
	if args[0].Tag != VTArray {
		return Null, fmt.Errorf("push expects an array, got %s", args[0].TypeName())
	}
	arr := args[0].Data.(*ArrayObject)
	arr.Items = append(arr.Items, args[1:]...)
	return args[0], nil
}

// keys returns an object's keys as an array of strings, in insertion order.
func builtinKeys(_ *Interpreter, args []Value) (Value, error) {
	if err := wantArgs("keys", args, 1); err != nil {
		return Null, err
	}
	if args[0].Tag != VTObject {
		return Null, fmt.Errorf("keys expects an object, got %s", args[0].TypeName())
	}
	o := args[0].Data.(*Object)
	out := make([]Value, 0, len(o.Keys))
	for _, k := range o.Keys {
		out = append(out, Str(k))
	}
	return ArrVal(&ArrayObject{Items: out}), nil
}

func builtinStr(_ *Interpreter, args []Value) (Value, error) {
	if err := wantArgs("str", args, 1); err != nil {
		return Null, err
	}
	return Str(stringify(args[0])), nil
}

func builtinType(_ *Interpreter, args []Value) (Value, error) {
	if err := wantArgs("type", args, 1); err != nil {
		return Null, err
	}
	return Str(args[0].TypeName()), nil
}

// time returns milliseconds since the Unix epoch.
func builtinTime(_ *Interpreter, args []Value) (Value, error) {
	if err := wantArgs("time", args, 0); err != nil {
		return Null, err
	}
	return Int(time.Now().UnixMilli()), nil
}
