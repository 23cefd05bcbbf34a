// Package reporter provides the built-in aspect reporters.
package reporter

import (
	"strings"

	"github.com/AndreyAkinshin/aspect/internal/output"
	"github.com/AndreyAkinshin/aspect/internal/snapshot"
	"github.com/AndreyAkinshin/aspect/pkg/aspect"
)

// DefaultProps are the stringify props used by the text reporters.
func DefaultProps() aspect.StringifyProps {
	return aspect.StringifyProps{Tab: 2, MaxExpandLevel: 10, MaxLineLength: 80}
}

func stringify(v aspect.ReflectedValue, props aspect.StringifyProps, indent int) string {
	props.Indent = indent
	return strings.TrimLeft(v.Stringify(props), " ")
}

func indentLines(s, sep string) string {
	return strings.Join(strings.Split(s, "\n"), sep)
}

// directTests returns the tests directly below g.
func directTests(ctx *aspect.TestContext, g *aspect.TestNode) []*aspect.TestNode {
	var tests []*aspect.TestNode
	for _, id := range g.Children {
		if n := ctx.Node(id); n != nil && !n.IsGroup() {
			tests = append(tests, n)
		}
	}
	return tests
}

// childGroups returns the groups directly below g.
func childGroups(ctx *aspect.TestContext, g *aspect.TestNode) []*aspect.TestNode {
	var groups []*aspect.TestNode
	for _, id := range g.Children {
		if n := ctx.Node(id); n != nil && n.IsGroup() {
			groups = append(groups, n)
		}
	}
	return groups
}

func countTodos(ctx *aspect.TestContext) int {
	n := 0
	for _, node := range ctx.Nodes() {
		n += len(node.Todos)
	}
	return n
}

func milliseconds(n *aspect.TestNode) int64 {
	return n.DeltaT.Milliseconds()
}

func writeProblems(w *output.Writer, ctx *aspect.TestContext) {
	for _, warning := range ctx.Warnings {
		w.Write("\n" + w.Yellow(" [Warning]") + ": " + warning.Type + " -> " + warning.Message + "\n")
		if stack := strings.TrimSpace(warning.StackTrace); stack != "" {
			w.Write(w.Yellow("   [Stack]") + ": " + w.Yellow(indentLines(stack, "\n      ")) + "\n")
		}
		w.Write("\n")
	}
	for _, e := range ctx.Errors {
		w.Write("\n" + w.Red("   [Error]") + ": " + e.Type + " " + e.Message + "\n")
		if stack := strings.TrimSpace(e.StackTrace); stack != "" {
			w.Write(w.Red("   [Stack]") + ": " + w.Yellow(indentLines(stack, "\n           ")) + "\n")
		}
	}
}

// WriteSnapshotDiff writes every entry of diff other than NoChange with its
// line-level changes.
func WriteSnapshotDiff(w *output.Writer, diff *snapshot.ResultSet) {
	if diff == nil {
		return
	}
	for _, name := range diff.Names() {
		result := diff.Results[name]
		if result.Kind == snapshot.NoChange {
			continue
		}
		w.Write(w.Red("[Snapshot]") + ": " + name + "\n")
		for _, change := range result.Changes {
			for _, line := range strings.Split(change.Value, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				switch {
				case change.Added:
					w.Write(w.Green("+ "+line) + "\n")
				case change.Removed:
					w.Write(w.Red("- "+line) + "\n")
				default:
					w.Write("  " + line + "\n")
				}
			}
		}
		w.Write("\n")
	}
}
