// builtin_core_test.go
package jive

import (
	"testing"
)

func Test_Builtin_Constants(t *testing.T) {
	v := evalSrc(t, `true`)
	if v.Tag != VTBool || !v.Data.(bool) {
		t.Fatalf("true: got %s", v)
	}
	if v := evalSrc(t, `null`); v.Tag != VTNull {
		t.Fatalf("null: got %s", v)
	}
	// the constants are ordinary bindings, just immutable ones
	evalErr(t, `true = 0;`, "cannot assign to const: true")
}

func Test_Builtin_Len(t *testing.T) {
	wantInt(t, evalSrc(t, `len("hello")`), 5)
	wantInt(t, evalSrc(t, `len("")`), 0)
	wantInt(t, evalSrc(t, `len([1, 2, 3])`), 3)
	wantInt(t, evalSrc(t, `len({a: 1, b: 2})`), 2)

	evalErr(t, `len(5)`, "len expects a str, array or object")
	evalErr(t, `len()`, "len expects 1 argument(s), got 0")
	evalErr(t, `len("a", "b")`, "len expects 1 argument(s), got 2")
}

func Test_Builtin_Push(t *testing.T) {
	wantInt(t, evalSrc(t, `let a = []; push(a, 1); push(a, 2, 3); len(a)`), 3)
	wantInt(t, evalSrc(t, `let a = [1]; push(a, 9); a[1]`), 9)

	// push returns the array, so calls can chain
	wantInt(t, evalSrc(t, `len(push(push([], 1), 2))`), 2)

	evalErr(t, `push([1])`, "push expects an array and at least one value")
	evalErr(t, `push(1, 2)`, "push expects an array, got int")
}

func Test_Builtin_Keys(t *testing.T) {
	v := evalSrc(t, `keys({b: 1, a: 2})`)
	if v.Tag != VTArray {
		t.Fatalf("keys should yield an array, got %s", v)
	}
	items := v.Data.(*ArrayObject).Items
	if len(items) != 2 || items[0].Data.(string) != "b" || items[1].Data.(string) != "a" {
		t.Fatalf("keys must come back in insertion order, got %v", items)
	}

	evalErr(t, `keys([1])`, "keys expects an object, got array")
}

func Test_Builtin_Str(t *testing.T) {
	cases := []struct{ src, want string }{
		{`str(42)`, "42"},
		{`str("x")`, "x"},
		{`str(null)`, "null"},
		{`str([1, "a"])`, `[1, "a"]`},
		{`str({k: 1})`, "{k: 1}"},
	}
	for _, c := range cases {
		v := evalSrc(t, c.src)
		if v.Tag != VTStr || v.Data.(string) != c.want {
			t.Fatalf("%q: want %q, got %s", c.src, c.want, v)
		}
	}
}

func Test_Builtin_Type(t *testing.T) {
	cases := []struct{ src, want string }{
		{`type(null)`, "null"},
		{`type(true)`, "bool"},
		{`type(1)`, "int"},
		{`type("s")`, "str"},
		{`type({})`, "object"},
		{`type([])`, "array"},
		{`type(len)`, "fn"},
		{`fn f() { 0 } type(f)`, "fn"},
	}
	for _, c := range cases {
		v := evalSrc(t, c.src)
		if v.Tag != VTStr || v.Data.(string) != c.want {
			t.Fatalf("%q: want %q, got %s", c.src, c.want, v)
		}
	}
}

func Test_Builtin_Time(t *testing.T) {
	v := evalSrc(t, `time()`)
	if v.Tag != VTInt || v.Data.(int64) <= 0 {
		t.Fatalf("time should be positive epoch millis, got %s", v)
	}
	evalErr(t, `time(1)`, "time expects 0 argument(s), got 1")
}

func Test_Builtin_Print(t *testing.T) {
	// print returns null; its stdout effect is exercised by the CLI
	if v, err := builtinPrint(nil, []Value{Str("ok"), Int(1)}); err != nil || v.Tag != VTNull {
		t.Fatalf("print: v=%s err=%v", v, err)
	}
}

func Test_Builtin_NativeErrorsCarryCallPosition(t *testing.T) {
	re := evalErr(t, "let a = 1;\nlen(1, 2)", "len expects 1 argument(s)")
	if re.Line != 2 || re.Col != 0 {
		t.Fatalf("native failure should point at the call, got %d:%d", re.Line, re.Col)
	}
}
