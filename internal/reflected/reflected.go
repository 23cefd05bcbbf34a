// Package reflected captures values in a display-friendly form for failure
// diagnostics and snapshots.
package reflected

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/AndreyAkinshin/aspect/internal/value"
)

// modulePrefix identifies frames that belong to the engine itself.
const modulePrefix = "github.com/AndreyAkinshin/aspect/"

// maxBlockBytes limits how many bytes of a non-string block are rendered.
const maxBlockBytes = 64

var referenceDumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                8,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Value is an immutable, recursively expandable rendering of a captured value.
type Value struct {
	Kind     value.Kind
	TypeName string
	// Text is the rendering of a non-array value.
	Text string
	// Values holds the rendered elements of an array.
	Values []Value
	// Size is the byte length of a block or the element count of an array.
	Size    int
	Stack   string
	Negated bool
}

// New renders v without a stack trace.
func New(v value.Value, negated bool) Value {
	r := render(v)
	r.Negated = negated
	return r
}

// Capture renders v and records the stack of the calling test code.
func Capture(v value.Value, negated bool) Value {
	r := New(v, negated)
	r.Stack = CallerStack()
	return r
}

// Text renders a plain message as a reflected value, used for descriptive
// expectations such as "an error".
func Text(s string, negated bool) Value {
	return Value{Kind: value.KindReference, TypeName: "string", Text: s, Negated: negated}
}

func render(v value.Value) Value {
	r := Value{Kind: v.Kind(), TypeName: v.TypeName()}
	switch v.Kind() {
	case value.KindNull:
		r.Text = "null"
	case value.KindScalar:
		r.Text = fmt.Sprint(v.Raw())
	case value.KindBlock:
		b, _ := v.Block()
		r.Size = b.Len
		if s, ok := v.Raw().(string); ok {
			r.Text = strconv.Quote(s)
		} else {
			r.Text = renderBytes(b)
		}
	case value.KindArray:
		elems, _ := v.Elems()
		r.Size = len(elems)
		r.Values = make([]Value, len(elems))
		for i, e := range elems {
			r.Values[i] = render(e)
		}
	default:
		r.Text = strings.TrimSpace(referenceDumper.Sdump(v.Raw()))
	}
	return r
}

func renderBytes(b value.Block) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Block(%d) [", b.Len)
	n := b.Len
	if n > maxBlockBytes {
		n = maxBlockBytes
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "0x%02x", b.Data[i])
	}
	if b.Len > maxBlockBytes {
		fmt.Fprintf(&sb, " ... %d more", b.Len-maxBlockBytes)
	}
	sb.WriteByte(']')
	return sb.String()
}

// CallerStack returns the call stack of the code under test. Frames that belong
// to the engine, the Go runtime and the testing package are dropped; test files
// of this module are kept.
func CallerStack() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var lines []string
	for {
		frame, more := frames.Next()
		if keepFrame(frame) {
			lines = append(lines, fmt.Sprintf("%s (%s:%d)", frame.Function, frame.File, frame.Line))
		}
		if !more {
			break
		}
	}
	return strings.Join(lines, "\n")
}

func keepFrame(f runtime.Frame) bool {
	switch {
	case f.Function == "":
		return false
	case strings.HasPrefix(f.Function, "runtime."), strings.HasPrefix(f.Function, "testing."):
		return false
	case strings.HasPrefix(f.Function, modulePrefix):
		return strings.HasSuffix(f.File, "_test.go")
	}
	return true
}
