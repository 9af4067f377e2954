// interpreter_test.go
package jive

import (
	"strings"
	"testing"
)

func evalSrc(t *testing.T, src string) Value {
	t.Helper()
	v, err := NewInterpreter().EvalSource(src)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v
}

func evalErr(t *testing.T, src, wantSub string) *RuntimeError {
	t.Helper()
	_, err := NewInterpreter().EvalSource(src)
	if err == nil {
		t.Fatalf("expected runtime error for %q", src)
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(re.Msg, wantSub) {
		t.Fatalf("message %q does not contain %q", re.Msg, wantSub)
	}
	return re
}

func wantInt(t *testing.T, v Value, n int64) {
	t.Helper()
	if v.Tag != VTInt || v.Data.(int64) != n {
		t.Fatalf("want int %d, got %s", n, v)
	}
}

func Test_Eval_Arithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{`1 + 2 * 3`, 7},
		{`(1 + 2) * 3`, 9},
		{`10 - 3 - 2`, 5},
		{`7 / 2`, 3},
		{`7 % 3`, 1},
		{`-5 + 2`, -3},
		{`6 & 3`, 2},
		{`6 | 3`, 7},
	}
	for _, c := range cases {
		wantInt(t, evalSrc(t, c.src), c.want)
	}
}

func Test_Eval_DivisionByZero(t *testing.T) {
	evalErr(t, `1 / 0`, "division by zero")
	evalErr(t, `1 % 0`, "modulo by zero")
}

func Test_Eval_StringConcat(t *testing.T) {
	v := evalSrc(t, `"n = " + 42`)
	if v.Tag != VTStr || v.Data.(string) != "n = 42" {
		t.Fatalf("got %s", v)
	}
	v = evalSrc(t, `1 + " left"`)
	if v.Tag != VTStr || v.Data.(string) != "1 left" {
		t.Fatalf("got %s", v)
	}
}

func Test_Eval_Comparisons(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{`1 < 2`, true},
		{`2 < 1`, false},
		{`"abc" < "abd"`, true},
		{`3 > 2`, true},
		{`1 == 1`, true},
		{`1 == "1"`, false},
		{`null == null`, true},
		{`1 != 2`, true},
	}
	for _, c := range cases {
		v := evalSrc(t, c.src)
		if v.Tag != VTBool || v.Data.(bool) != c.want {
			t.Fatalf("%q: want %v, got %s", c.src, c.want, v)
		}
	}
	evalErr(t, `1 < "a"`, "requires two ints or two strings")
}

func Test_Eval_ReferenceEquality(t *testing.T) {
	v := evalSrc(t, `let a = [1]; let b = [1]; a == b`)
	if v.Data.(bool) {
		t.Fatalf("distinct arrays must not compare equal")
	}
	v = evalSrc(t, `let a = [1]; let b = a; a == b`)
	if !v.Data.(bool) {
		t.Fatalf("same array must compare equal to itself")
	}
}

func Test_Eval_LetAssign(t *testing.T) {
	wantInt(t, evalSrc(t, `let x = 5; x = x + 1; x`), 6)
}

func Test_Eval_ConstIsImmutable(t *testing.T) {
	evalErr(t, `const x = 1; x = 2;`, "cannot assign to const: x")
}

func Test_Eval_FnDeclIsImmutable(t *testing.T) {
	evalErr(t, `fn f() { 1 } f = 2;`, "cannot assign to const: f")
}

func Test_Eval_UndefinedVariable(t *testing.T) {
	re := evalErr(t, `missing`, "undefined variable: missing")
	if re.Line != 1 {
		t.Fatalf("error line: got %d", re.Line)
	}
	evalErr(t, `y = 1;`, "undefined variable: y")
}

func Test_Eval_Redeclaration(t *testing.T) {
	evalErr(t, `let x = 1; let x = 2;`, "redeclaration of variable: x")
	// shadowing in a nested scope is fine
	wantInt(t, evalSrc(t, `let x = 1; if true { let x = 2; x } else { 0 }`), 2)
}

func Test_Eval_Functions(t *testing.T) {
	wantInt(t, evalSrc(t, `fn add(a, b) { a + b } add(2, 3)`), 5)

	// the body yields its last statement's value
	wantInt(t, evalSrc(t, `fn f() { 1; 2; 3 } f()`), 3)

	// missing arguments bind to null, extras are ignored
	v := evalSrc(t, `fn id(a) { a } id()`)
	if v.Tag != VTNull {
		t.Fatalf("missing argument should bind to null, got %s", v)
	}
	wantInt(t, evalSrc(t, `fn id(a) { a } id(1, 2, 3)`), 1)
}

func Test_Eval_Recursion(t *testing.T) {
	wantInt(t, evalSrc(t, `
fn fib(n) {
	if n < 2 { n } else { fib(n - 1) + fib(n - 2) }
}
fib(10)`), 55)
}

func Test_Eval_Closures(t *testing.T) {
	wantInt(t, evalSrc(t, `
let n = 0;
fn bump() { n = n + 1; n }
bump();
bump();
bump()`), 3)

	// a closure keeps observing its captured scope, not a copy
	wantInt(t, evalSrc(t, `
fn make() {
	let hidden = 10;
	fn read() { hidden }
	read
}
const r = make();
r()`), 10)
}

func Test_Eval_CallNonFunction(t *testing.T) {
	evalErr(t, `let x = 3; x()`, "cannot call a int value")
}

func Test_Eval_Truthiness(t *testing.T) {
	falsy := []string{`0`, `""`, `null`, `false`}
	for _, lit := range falsy {
		wantInt(t, evalSrc(t, `if `+lit+` { 1 } else { 2 }`), 2)
	}
	truthy := []string{`1`, `-1`, `"0"`, `true`, `[]`, `{}`}
	for _, lit := range truthy {
		wantInt(t, evalSrc(t, `if `+lit+` { 1 } else { 2 }`), 1)
	}
}

func Test_Eval_IfWithoutElse(t *testing.T) {
	v := evalSrc(t, `if false { 1 }`)
	if v.Tag != VTNull {
		t.Fatalf("untaken if should yield null, got %s", v)
	}
}

func Test_Eval_ElseIfChain(t *testing.T) {
	wantInt(t, evalSrc(t, `let x = 2; if x == 1 { 10 } else if x == 2 { 20 } else { 30 }`), 20)
}

func Test_Eval_AndShortCircuits(t *testing.T) {
	// the right side must not run when the left is falsy
	wantInt(t, evalSrc(t, `
let hits = 0;
fn bump() { hits = hits + 1; hits }
0 && bump();
hits`), 0)

	// and the expression yields whichever operand decided it
	wantInt(t, evalSrc(t, `1 && 2`), 2)
	wantInt(t, evalSrc(t, `0 && 2`), 0)
	v := evalSrc(t, `"" && 2`)
	if v.Tag != VTStr || v.Data.(string) != "" {
		t.Fatalf("falsy left operand should come back unchanged, got %s", v)
	}
}

func Test_Eval_ForLoop(t *testing.T) {
	wantInt(t, evalSrc(t, `
let sum = 0;
for (let i = 0; i < 3; i = i + 1) {
	sum = sum + i;
}
sum`), 3)
}

func Test_Eval_ForBodyScopeDoesNotLeak(t *testing.T) {
	// a fresh body scope per pass: redeclaring inside the body is legal
	wantInt(t, evalSrc(t, `
let sum = 0;
for (let i = 0; i < 3; i = i + 1) {
	let double = i * 2;
	sum = sum + double;
}
sum`), 6)

	evalErr(t, `
for (let i = 0; i < 1; i = i + 1) {
	let tmp = i;
}
tmp`, "undefined variable: tmp")

	// the loop variable itself is scoped to the loop
	evalErr(t, `
for (let i = 0; i < 1; i = i + 1) { i }
i`, "undefined variable: i")
}

func Test_Eval_Objects(t *testing.T) {
	wantInt(t, evalSrc(t, `let o = {a: 1, b: 2}; o.a + o.b`), 3)
	wantInt(t, evalSrc(t, `let o = {a: 1}; o.a = 5; o.a`), 5)
	wantInt(t, evalSrc(t, `let o = {}; o.fresh = 7; o.fresh`), 7)
	wantInt(t, evalSrc(t, `let o = {a: 1}; o["a"]`), 1)

	v := evalSrc(t, `let o = {a: 1}; o.missing`)
	if v.Tag != VTNull {
		t.Fatalf("missing key should read as null, got %s", v)
	}

	evalErr(t, `let o = {}; o[1]`, "object key must be a str")
}

func Test_Eval_ObjectShorthand(t *testing.T) {
	wantInt(t, evalSrc(t, `let name = 9; let o = {name}; o.name`), 9)
}

func Test_Eval_Arrays(t *testing.T) {
	wantInt(t, evalSrc(t, `let a = [10, 20, 30]; a[1]`), 20)
	wantInt(t, evalSrc(t, `let a = [1, 2]; a[0] = 5; a[0]`), 5)
	evalErr(t, `let a = [1]; a[3]`, "array index out of range: 3")
	evalErr(t, `let a = [1]; a["x"]`, "array index must be an int")
	evalErr(t, `let a = [1]; a.length`, "arrays have no named properties")
}

func Test_Eval_ArraysShareStorage(t *testing.T) {
	wantInt(t, evalSrc(t, `let a = [1]; let b = a; b[0] = 9; a[0]`), 9)
}

func Test_Eval_MemberOfScalar(t *testing.T) {
	evalErr(t, `let x = 1; x.a`, "cannot access property of a int value")
	evalErr(t, `let x = 1; x.a = 2;`, "cannot assign into a int value")
}

func Test_Eval_AssignmentYieldsValue(t *testing.T) {
	wantInt(t, evalSrc(t, `let a = 0; let b = 0; a = b = 7; a + b`), 14)
}

func Test_Eval_UnaryOperators(t *testing.T) {
	wantInt(t, evalSrc(t, `-(2 + 3)`), -5)
	v := evalSrc(t, `!0`)
	if v.Tag != VTBool || !v.Data.(bool) {
		t.Fatalf("!0 should be true, got %s", v)
	}
	evalErr(t, `-"x"`, "unary '-' requires an int")
}

func Test_Eval_StatePersistsAcrossEvalSource(t *testing.T) {
	ip := NewInterpreter()
	if _, err := ip.EvalSource(`let count = 1;`); err != nil {
		t.Fatalf("first input: %v", err)
	}
	if _, err := ip.EvalSource(`count = count + 1;`); err != nil {
		t.Fatalf("second input: %v", err)
	}
	v, err := ip.EvalSource(`count`)
	if err != nil {
		t.Fatalf("third input: %v", err)
	}
	wantInt(t, v, 2)
}

func Test_Eval_RuntimeErrorPositions(t *testing.T) {
	re := evalErr(t, "let x = 1;\nlet y = nope;", "undefined variable: nope")
	if re.Line != 2 || re.Col != 8 {
		t.Fatalf("position: got %d:%d", re.Line, re.Col)
	}
}
