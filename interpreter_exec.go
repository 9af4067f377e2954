// interpreter_exec.go — tree-walking evaluator for jive.
//
// eval dispatches on the concrete node type; the switch is total over the
// closed set in ast.go and treats anything else as an internal error. Every
// failure aborts the current program evaluation with a *RuntimeError; there
// is no exception construct in the language, so nothing is recoverable from
// inside it.
package jive

import "fmt"

// errAt builds a positioned runtime error from a node.
func errAt(n Node, format string, args ...any) *RuntimeError {
	line, col := n.Pos()
	return &RuntimeError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// wrapAt lifts a plain error (typically from Env) into a positioned one.
func wrapAt(n Node, err error) *RuntimeError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RuntimeError); ok {
		return re
	}
	return errAt(n, "%s", err.Error())
}

func (ip *Interpreter) eval(n Node, env *Env) (Value, error) {
	switch x := n.(type) {

	// ----- statements -----

	case *Program:
		out := Null
		for _, s := range x.Stmts {
			v, err := ip.eval(s, env)
			if err != nil {
				return Null, err
			}
			out = v
		}
		return out, nil

	case *ExprStmt:
		return ip.eval(x.X, env)

	case *VarDecl:
		init := Null
		if x.Init != nil {
			v, err := ip.eval(x.Init, env)
			if err != nil {
				return Null, err
			}
			init = v
		}
		if err := env.Declare(x.Name, init, !x.Const); err != nil {
			return Null, wrapAt(x, err)
		}
		return Null, nil

	case *FnDecl:
		fn := &Fun{Name: x.Name, Params: x.Params, Body: x.Body, Env: env}
		if err := env.Declare(x.Name, FunVal(fn), false); err != nil {
			return Null, wrapAt(x, err)
		}
		return Null, nil

	case *IfStmt:
		cond, err := ip.eval(x.Cond, env)
		if err != nil {
			return Null, err
		}
		if Truthy(cond) {
			return ip.evalBlock(x.Then, env.Child())
		}
		if x.Else != nil {
			return ip.evalBlock(x.Else, env.Child())
		}
		return Null, nil

	case *ForStmt:
		return ip.evalFor(x, env)

	// ----- expressions -----

	case *NumberLit:
		return Int(x.Value), nil

	case *StringLit:
		return Str(x.Value), nil

	case *Ident:
		v, err := env.Get(x.Name)
		if err != nil {
			return Null, wrapAt(x, err)
		}
		return v, nil

	case *UnaryExpr:
		return ip.evalUnary(x, env)

	case *BinaryExpr:
		return ip.evalBinary(x, env)

	case *AssignExpr:
		return ip.evalAssign(x, env)

	case *MemberExpr:
		return ip.evalMember(x, env)

	case *CallExpr:
		return ip.evalCall(x, env)

	case *ObjectLit:
		obj := NewObject()
		for _, prop := range x.Props {
			var v Value
			if prop.Value == nil {
				// shorthand { name } looks the key up in the current scope
				got, err := env.Get(prop.Key)
				if err != nil {
					return Null, wrapAt(x, err)
				}
				v = got
			} else {
				got, err := ip.eval(prop.Value, env)
				if err != nil {
					return Null, err
				}
				v = got
			}
			obj.Set(prop.Key, v)
		}
		return ObjVal(obj), nil

	case *ArrayLit:
		items := make([]Value, 0, len(x.Items))
		for _, it := range x.Items {
			v, err := ip.eval(it, env)
			if err != nil {
				return Null, err
			}
			items = append(items, v)
		}
		return ArrVal(&ArrayObject{Items: items}), nil
	}

	return Null, errAt(n, "internal error: unhandled AST node %T", n)
}

// evalBlock runs statements in order in the given scope and yields the value
// of the last one (null for an empty block).
func (ip *Interpreter) evalBlock(stmts []Stmt, env *Env) (Value, error) {
	out := Null
	for _, s := range stmts {
		v, err := ip.eval(s, env)
		if err != nil {
			return Null, err
		}
		out = v
	}
	return out, nil
}

// evalFor runs the loop header (init/cond/post) in one loop scope and each
// body pass in a fresh child of it, so body bindings never leak and never
// collide across iterations.
func (ip *Interpreter) evalFor(x *ForStmt, env *Env) (Value, error) {
	loop := env.Child()
	if _, err := ip.eval(x.Init, loop); err != nil {
		return Null, err
	}
	for {
		cond, err := ip.eval(x.Cond, loop)
		if err != nil {
			return Null, err
		}
		if !Truthy(cond) {
			return Null, nil
		}
		if _, err := ip.evalBlock(x.Body, loop.Child()); err != nil {
			return Null, err
		}
		if _, err := ip.eval(x.Post, loop); err != nil {
			return Null, err
		}
	}
}

func (ip *Interpreter) evalUnary(x *UnaryExpr, env *Env) (Value, error) {
	v, err := ip.eval(x.Operand, env)
	if err != nil {
		return Null, err
	}
	switch x.Op {
	case "!":
		return Bool(!Truthy(v)), nil
	case "-":
		if v.Tag != VTInt {
			return Null, errAt(x, "unary '-' requires an int, got %s", v.TypeName())
		}
		return Int(-v.Data.(int64)), nil
	}
	return Null, errAt(x, "internal error: unhandled unary operator %q", x.Op)
}

func (ip *Interpreter) evalBinary(x *BinaryExpr, env *Env) (Value, error) {
	left, err := ip.eval(x.Left, env)
	if err != nil {
		return Null, err
	}

	// && short-circuits: the right operand is not evaluated when the left is
	// falsy, and the expression yields whichever operand decided it.
	if x.Op == "&&" {
		if !Truthy(left) {
			return left, nil
		}
		return ip.eval(x.Right, env)
	}

	right, err := ip.eval(x.Right, env)
	if err != nil {
		return Null, err
	}
	return ip.applyBinary(x, left, right)
}

func (ip *Interpreter) applyBinary(x *BinaryExpr, l, r Value) (Value, error) {
	bothInt := l.Tag == VTInt && r.Tag == VTInt

	switch x.Op {
	case "+":
		// String concatenation wins when either side is a string.
		if l.Tag == VTStr || r.Tag == VTStr {
			return Str(stringify(l) + stringify(r)), nil
		}
		if bothInt {
			return Int(l.Data.(int64) + r.Data.(int64)), nil
		}
		return Null, errAt(x, "operator '+' requires ints or strings, got %s and %s", l.TypeName(), r.TypeName())

	case "-", "*", "/", "%", "&", "|":
		if !bothInt {
			return Null, errAt(x, "operator %q requires two ints, got %s and %s", x.Op, l.TypeName(), r.TypeName())
		}
		a, b := l.Data.(int64), r.Data.(int64)
		switch x.Op {
		case "-":
			return Int(a - b), nil
		case "*":
			return Int(a * b), nil
		case "/":
			if b == 0 {
				return Null, errAt(x, "division by zero")
			}
			return Int(a / b), nil
		case "%":
			if b == 0 {
				return Null, errAt(x, "modulo by zero")
			}
			return Int(a % b), nil
		case "&":
			return Int(a & b), nil
		case "|":
			return Int(a | b), nil
		}

	case "<", ">":
		if bothInt {
			a, b := l.Data.(int64), r.Data.(int64)
			if x.Op == "<" {
				return Bool(a < b), nil
			}
			return Bool(a > b), nil
		}
		if l.Tag == VTStr && r.Tag == VTStr {
			a, b := l.Data.(string), r.Data.(string)
			if x.Op == "<" {
				return Bool(a < b), nil
			}
			return Bool(a > b), nil
		}
		return Null, errAt(x, "operator %q requires two ints or two strings, got %s and %s", x.Op, l.TypeName(), r.TypeName())

	case "==":
		return Bool(equalValues(l, r)), nil
	case "!=":
		return Bool(!equalValues(l, r)), nil
	}

	return Null, errAt(x, "internal error: unhandled binary operator %q", x.Op)
}

// equalValues compares scalars by value and objects/arrays/functions by
// identity. Values of different types are never equal.
func equalValues(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNull:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTInt:
		return a.Data.(int64) == b.Data.(int64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	default:
		return a.Data == b.Data
	}
}

func (ip *Interpreter) evalAssign(x *AssignExpr, env *Env) (Value, error) {
	value, err := ip.eval(x.Value, env)
	if err != nil {
		return Null, err
	}

	switch target := x.Target.(type) {
	case *Ident:
		if err := env.Assign(target.Name, value); err != nil {
			return Null, wrapAt(x, err)
		}
		return value, nil

	case *MemberExpr:
		obj, err := ip.eval(target.Object, env)
		if err != nil {
			return Null, err
		}
		switch obj.Tag {
		case VTObject:
			key, err := ip.memberKey(target, env)
			if err != nil {
				return Null, err
			}
			obj.Data.(*Object).Set(key, value)
			return value, nil
		case VTArray:
			idx, err := ip.arrayIndex(target, obj.Data.(*ArrayObject), env)
			if err != nil {
				return Null, err
			}
			obj.Data.(*ArrayObject).Items[idx] = value
			return value, nil
		default:
			return Null, errAt(target, "cannot assign into a %s value", obj.TypeName())
		}
	}

	// The parser only produces Ident/MemberExpr targets.
	return Null, errAt(x, "internal error: unhandled assignment target %T", x.Target)
}

func (ip *Interpreter) evalMember(x *MemberExpr, env *Env) (Value, error) {
	obj, err := ip.eval(x.Object, env)
	if err != nil {
		return Null, err
	}
	switch obj.Tag {
	case VTObject:
		key, err := ip.memberKey(x, env)
		if err != nil {
			return Null, err
		}
		// Missing keys read as null rather than failing.
		return obj.Data.(*Object).Get(key), nil
	case VTArray:
		idx, err := ip.arrayIndex(x, obj.Data.(*ArrayObject), env)
		if err != nil {
			return Null, err
		}
		return obj.Data.(*ArrayObject).Items[idx], nil
	default:
		return Null, errAt(x, "cannot access property of a %s value", obj.TypeName())
	}
}

// memberKey resolves the property of a member expression against an object:
// `obj.name` carries the name directly, `obj[expr]` must evaluate to a str.
func (ip *Interpreter) memberKey(x *MemberExpr, env *Env) (string, error) {
	if !x.Computed {
		return x.Property.(*StringLit).Value, nil
	}
	key, err := ip.eval(x.Property, env)
	if err != nil {
		return "", err
	}
	if key.Tag != VTStr {
		return "", errAt(x, "object key must be a str, got %s", key.TypeName())
	}
	return key.Data.(string), nil
}

// arrayIndex resolves and bounds-checks a computed index against an array.
func (ip *Interpreter) arrayIndex(x *MemberExpr, arr *ArrayObject, env *Env) (int, error) {
	if !x.Computed {
		return 0, errAt(x, "arrays have no named properties; use [index]")
	}
	idx, err := ip.eval(x.Property, env)
	if err != nil {
		return 0, err
	}
	if idx.Tag != VTInt {
		return 0, errAt(x, "array index must be an int, got %s", idx.TypeName())
	}
	i := idx.Data.(int64)
	if i < 0 || i >= int64(len(arr.Items)) {
		return 0, errAt(x, "array index out of range: %d (len %d)", i, len(arr.Items))
	}
	return int(i), nil
}

func (ip *Interpreter) evalCall(x *CallExpr, env *Env) (Value, error) {
	callee, err := ip.eval(x.Callee, env)
	if err != nil {
		return Null, err
	}
	args := make([]Value, 0, len(x.Args))
	for _, a := range x.Args {
		v, err := ip.eval(a, env)
		if err != nil {
			return Null, err
		}
		args = append(args, v)
	}

	switch callee.Tag {
	case VTNative:
		nat := callee.Data.(*Native)
		out, err := nat.Impl(ip, args)
		if err != nil {
			return Null, wrapAt(x, err)
		}
		return out, nil

	case VTFun:
		fn := callee.Data.(*Fun)
		// Fresh frame over the captured closure env. Missing arguments bind
		// to null; extra arguments are ignored.
		frame := fn.Env.Child()
		for i, name := range fn.Params {
			arg := Null
			if i < len(args) {
				arg = args[i]
			}
			if err := frame.Declare(name, arg, true); err != nil {
				return Null, wrapAt(x, err)
			}
		}
		return ip.evalBlock(fn.Body, frame)

	default:
		return Null, errAt(x, "cannot call a %s value", callee.TypeName())
	}
}
