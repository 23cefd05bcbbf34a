// Package value classifies runtime values into the categories the comparison
// engine dispatches on.
//
// A Value is captured once per assertion call. Its Kind never changes after
// capture, so every strategy sees the same category for the same value.
package value

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"reflect"
)

// Kind is the category of a captured value.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindReference
	KindBlock
	KindArray
)

var kindNames = [...]string{
	KindNull:      "null",
	KindScalar:    "scalar",
	KindReference: "reference",
	KindBlock:     "block",
	KindArray:     "array",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Block is a length-prefixed byte buffer. Len is carried explicitly so that
// size checks never need to inspect Data.
type Block struct {
	Data []byte
	Len  int
}

// NewBlock wraps b as a Block.
func NewBlock(b []byte) Block {
	return Block{Data: b, Len: len(b)}
}

// Value is a tagged union over null, scalar, reference, block and array values.
type Value struct {
	kind     Kind
	raw      interface{}
	typeName string

	// scalar; integers keep an exact payload next to num
	num     float64
	numeric bool
	boolean bool
	integer intKind
	i       int64
	u       uint64

	// block, array and reference identity
	ident uintptr
	text  bool
	block Block
	elems []Value
}

type intKind int

const (
	notInteger intKind = iota
	signed
	unsigned
)

// Of captures v and determines its Kind.
//
// Classification rules:
//   - nil interfaces, nil pointers, maps, slices, channels and funcs are null
//   - booleans and numbers are scalars
//   - strings and []byte are blocks
//   - other slices and arrays are arrays; elements are captured recursively
//   - everything else (pointers, maps, channels, funcs, structs) is a reference
func Of(v interface{}) Value {
	if v == nil {
		return Value{kind: KindNull, typeName: "nil"}
	}
	if already, ok := v.(Value); ok {
		return already
	}
	return of(reflect.ValueOf(v))
}

func of(rv reflect.Value) Value {
	typeName := rv.Type().String()
	val := Value{raw: rv.Interface(), typeName: typeName}

	switch rv.Kind() {
	case reflect.Bool:
		val.kind = KindScalar
		val.boolean = rv.Bool()
		if val.boolean {
			val.num = 1
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val.kind = KindScalar
		val.numeric = true
		val.integer = signed
		val.i = rv.Int()
		val.num = float64(val.i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		val.kind = KindScalar
		val.numeric = true
		val.integer = unsigned
		val.u = rv.Uint()
		val.num = float64(val.u)
	case reflect.Float32, reflect.Float64:
		val.kind = KindScalar
		val.numeric = true
		val.num = rv.Float()
	case reflect.Complex64, reflect.Complex128:
		val.kind = KindScalar
	case reflect.String:
		s := rv.String()
		val.kind = KindBlock
		val.text = true
		val.block = NewBlock([]byte(s))
	case reflect.Slice:
		if rv.IsNil() {
			val.kind = KindNull
			return val
		}
		val.ident = rv.Pointer()
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			val.kind = KindBlock
			val.block = NewBlock(rv.Bytes())
			return val
		}
		val.kind = KindArray
		val.elems = elements(rv)
	case reflect.Array:
		val.kind = KindArray
		val.elems = elements(rv)
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			val.kind = KindNull
			return val
		}
		val.kind = KindReference
		val.ident = rv.Pointer()
	case reflect.Interface:
		if rv.IsNil() {
			return Value{kind: KindNull, typeName: typeName}
		}
		return of(rv.Elem())
	default:
		val.kind = KindReference
	}
	return val
}

func elements(rv reflect.Value) []Value {
	elems := make([]Value, rv.Len())
	for i := range elems {
		elems[i] = of(rv.Index(i))
	}
	return elems
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull, typeName: "nil"}
}

// Kind returns the category of the value.
func (v Value) Kind() Kind { return v.kind }

// Raw returns the original Go value. Null values may carry a typed nil.
func (v Value) Raw() interface{} { return v.raw }

// TypeName returns the Go type name of the captured value.
func (v Value) TypeName() string { return v.typeName }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric value of a scalar. ok is false for booleans,
// complex numbers and every non-scalar kind.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindScalar || !v.numeric {
		return 0, false
	}
	return v.num, true
}

// Block returns the byte content of a block value.
func (v Value) Block() (Block, bool) {
	if v.kind != KindBlock {
		return Block{}, false
	}
	return v.block, true
}

// Elems returns the elements of an array value. A typed nil slice is an
// empty array.
func (v Value) Elems() ([]Value, bool) {
	if v.kind == KindNull {
		rv := reflect.ValueOf(v.raw)
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
			return nil, true
		}
	}
	if v.kind != KindArray {
		return nil, false
	}
	return v.elems, true
}

// Len returns the element count of arrays, the byte length of blocks and the
// entry count of maps, channels and pointed-to arrays. Typed nil slices and
// maps have length 0.
func (v Value) Len() (int, bool) {
	switch v.kind {
	case KindNull:
		switch reflect.ValueOf(v.raw).Kind() {
		case reflect.Slice, reflect.Map:
			return 0, true
		}
	case KindArray:
		return len(v.elems), true
	case KindBlock:
		return v.block.Len, true
	case KindReference:
		rv := reflect.ValueOf(v.raw)
		switch rv.Kind() {
		case reflect.Map, reflect.Chan:
			return rv.Len(), true
		case reflect.Ptr:
			if rv.Elem().Kind() == reflect.Array {
				return rv.Elem().Len(), true
			}
		}
	}
	return 0, false
}

// Truthy reports the truthiness of the value: null, zero, NaN, false and empty
// blocks or arrays are falsy, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindScalar:
		if !v.numeric {
			if c, ok := v.raw.(complex128); ok {
				return c != 0
			}
			if c, ok := v.raw.(complex64); ok {
				return c != 0
			}
			return v.boolean
		}
		return v.num != 0 && !math.IsNaN(v.num)
	case KindBlock:
		return v.block.Len > 0
	case KindArray:
		return len(v.elems) > 0
	default:
		return true
	}
}

// SameIdentity reports whether v and other refer to the same storage. Two null
// values share identity. Scalars and strings have no identity and compare by
// value.
func (v Value) SameIdentity(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindScalar:
		return ScalarEqual(v, other)
	case KindBlock:
		if v.text || other.text {
			return v.text && other.text && bytes.Equal(v.block.Data, other.block.Data)
		}
		return v.ident == other.ident && v.block.Len == other.block.Len
	case KindArray:
		if v.ident == 0 || other.ident == 0 {
			// Go arrays are values; they have no storage identity of their own.
			return reflect.DeepEqual(v.raw, other.raw)
		}
		return v.ident == other.ident && len(v.elems) == len(other.elems)
	default:
		if v.ident != 0 || other.ident != 0 {
			return v.ident == other.ident && v.typeName == other.typeName
		}
		return comparableEqual(v.raw, other.raw)
	}
}

// ScalarEqual compares two scalar values. Numbers compare numerically across
// Go types, so int(1) equals float64(1). NaN is never equal to anything.
func ScalarEqual(a, b Value) bool {
	if a.kind != KindScalar || b.kind != KindScalar {
		return false
	}
	if a.numeric && b.numeric {
		c, ok := Compare(a, b)
		return ok && c == 0
	}
	if a.numeric || b.numeric {
		return false
	}
	return comparableEqual(a.raw, b.raw)
}

// Compare orders two numbers, returning -1, 0 or +1. Two integers compare
// exactly whatever their width or signedness; a float on either side makes
// the comparison floating point. ok is false when either side is not a
// number or is NaN.
func Compare(a, b Value) (c int, ok bool) {
	if a.kind != KindScalar || b.kind != KindScalar || !a.numeric || !b.numeric {
		return 0, false
	}
	switch {
	case a.integer == signed && b.integer == signed:
		return cmp.Compare(a.i, b.i), true
	case a.integer == unsigned && b.integer == unsigned:
		return cmp.Compare(a.u, b.u), true
	case a.integer == signed && b.integer == unsigned:
		if a.i < 0 {
			return -1, true
		}
		return cmp.Compare(uint64(a.i), b.u), true
	case a.integer == unsigned && b.integer == signed:
		if b.i < 0 {
			return 1, true
		}
		return cmp.Compare(a.u, uint64(b.i)), true
	}
	if math.IsNaN(a.num) || math.IsNaN(b.num) {
		return 0, false
	}
	return cmp.Compare(a.num, b.num), true
}

func comparableEqual(a, b interface{}) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
