// printer.go — user-facing value rendering for the REPL and `print`.
package jive

import (
	"strconv"
	"strings"
)

// FormatValue renders v deterministically: object keys in insertion order,
// strings quoted. Cyclic objects/arrays print "..." at the cycle point.
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v, map[any]bool{})
	return b.String()
}

// stringify renders v for concatenation and `print`: like FormatValue except
// a top-level string appears raw, without quotes.
func stringify(v Value) string {
	if v.Tag == VTStr {
		return v.Data.(string)
	}
	return FormatValue(v)
}

func writeValue(b *strings.Builder, v Value, seen map[any]bool) {
	switch v.Tag {
	case VTNull:
		b.WriteString("null")
	case VTBool:
		b.WriteString(strconv.FormatBool(v.Data.(bool)))
	case VTInt:
		b.WriteString(strconv.FormatInt(v.Data.(int64), 10))
	case VTStr:
		b.WriteString(strconv.Quote(v.Data.(string)))
	case VTObject:
		o := v.Data.(*Object)
		if seen[o] {
			b.WriteString("{...}")
			return
		}
		seen[o] = true
		b.WriteByte('{')
		for i, k := range o.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			writeValue(b, o.Entries[k], seen)
		}
		b.WriteByte('}')
		delete(seen, o)
	case VTArray:
		a := v.Data.(*ArrayObject)
		if seen[a] {
			b.WriteString("[...]")
			return
		}
		seen[a] = true
		b.WriteByte('[')
		for i, it := range a.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, it, seen)
		}
		b.WriteByte(']')
		delete(seen, a)
	case VTFun:
		b.WriteString("<fn ")
		b.WriteString(v.Data.(*Fun).Name)
		b.WriteByte('>')
	case VTNative:
		b.WriteString("<native fn ")
		b.WriteString(v.Data.(*Native).Name)
		b.WriteByte('>')
	default:
		b.WriteString("<unknown>")
	}
}
