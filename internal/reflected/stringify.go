package reflected

import (
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/aspect/internal/value"
)

// Props control how a Value is stringified.
type Props struct {
	// Indent is the number of spaces prefixed to every line.
	Indent int
	// Tab is the number of spaces added per nesting level.
	Tab int
	// MaxExpandLevel is the nesting depth after which arrays collapse to a
	// length summary.
	MaxExpandLevel int
	// MaxLineLength is the width under which arrays of scalars stay on one line.
	MaxLineLength int
}

// DefaultProps returns the props used when none are given.
func DefaultProps() Props {
	return Props{
		Indent:         0,
		Tab:            2,
		MaxExpandLevel: 10,
		MaxLineLength:  80,
	}
}

// Stringify renders the value as text.
func (v Value) Stringify(p Props) string {
	if p.Tab <= 0 {
		p.Tab = 2
	}
	if p.MaxLineLength <= 0 {
		p.MaxLineLength = 80
	}
	if p.MaxExpandLevel <= 0 {
		p.MaxExpandLevel = DefaultProps().MaxExpandLevel
	}
	var sb strings.Builder
	pad := strings.Repeat(" ", p.Indent)
	sb.WriteString(pad)
	v.write(&sb, p, pad, 0)
	return sb.String()
}

// String renders the value with DefaultProps.
func (v Value) String() string {
	return v.Stringify(DefaultProps())
}

func (v Value) write(sb *strings.Builder, p Props, pad string, level int) {
	if v.Kind != value.KindArray {
		sb.WriteString(indentLines(v.Text, pad+strings.Repeat(" ", level*p.Tab)))
		return
	}
	if len(v.Values) == 0 {
		sb.WriteString("[]")
		return
	}
	if level >= p.MaxExpandLevel {
		sb.WriteString("[...")
		sb.WriteString(strconv.Itoa(v.Size))
		sb.WriteString(" items]")
		return
	}
	if inline, ok := v.inline(p.MaxLineLength); ok {
		sb.WriteString(inline)
		return
	}

	inner := pad + strings.Repeat(" ", (level+1)*p.Tab)
	sb.WriteString("[\n")
	for i, elem := range v.Values {
		sb.WriteString(inner)
		elem.write(sb, p, pad, level+1)
		if i < len(v.Values)-1 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(pad + strings.Repeat(" ", level*p.Tab))
	sb.WriteByte(']')
}

// inline renders an array of single-line non-array values on one line.
func (v Value) inline(maxLen int) (string, bool) {
	parts := make([]string, len(v.Values))
	total := 2
	for i, elem := range v.Values {
		if elem.Kind == value.KindArray || strings.Contains(elem.Text, "\n") {
			return "", false
		}
		parts[i] = elem.Text
		total += len(elem.Text) + 2
		if total > maxLen {
			return "", false
		}
	}
	return "[" + strings.Join(parts, ", ") + "]", true
}

// indentLines prefixes every line after the first with pad.
func indentLines(s, pad string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\n"+pad)
}
