package reporter

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/aspect/internal/output"
	"github.com/AndreyAkinshin/aspect/internal/snapshot"
	"github.com/AndreyAkinshin/aspect/pkg/aspect"
)

// VerboseReporter writes every group, test, log and todo as it finishes, then
// a summary block per file.
type VerboseReporter struct {
	out   *output.Writer
	Props aspect.StringifyProps
}

// NewVerbose returns a VerboseReporter writing to w.
func NewVerbose(w *output.Writer) *VerboseReporter {
	return &VerboseReporter{out: w, Props: DefaultProps()}
}

func (r *VerboseReporter) OnEnter(*aspect.TestContext, *aspect.TestNode) {}

func (r *VerboseReporter) OnExit(*aspect.TestContext, *aspect.TestNode) {}

func (r *VerboseReporter) OnGroupStart(ctx *aspect.TestContext, group *aspect.TestNode) {
	if len(directTests(ctx, group)) == 0 || group.Name == "" {
		return
	}
	r.out.Write("[Describe]: " + group.Name + "\n\n")
}

func (r *VerboseReporter) OnGroupFinish(ctx *aspect.TestContext, group *aspect.TestNode) {
	if len(directTests(ctx, group)) == 0 {
		return
	}
	r.out.Write("\n")
}

func (r *VerboseReporter) OnTestStart(*aspect.TestContext, *aspect.TestNode, *aspect.TestNode) {}

func (r *VerboseReporter) OnTestFinish(_ *aspect.TestContext, _ *aspect.TestNode, test *aspect.TestNode) {
	w := r.out
	if test.Pass {
		if test.Negated {
			w.Write(" " + w.Green(" [Throws]: ✔") + " " + test.Name + "\n")
		} else {
			w.Write(" " + w.Green("[Success]: ✔") + " " + test.Name + "\n")
		}
		return
	}

	w.Write("    " + w.Red("[Fail]: ✖") + " " + test.Name + "\n")
	if !test.Negated {
		if test.Actual != nil {
			w.Write("  [Actual]: " + stringify(*test.Actual, r.Props, 2) + "\n")
		}
		if test.Expected != nil {
			not := ""
			if test.Expected.Negated {
				not = "Not "
			}
			w.Write("[Expected]: " + not + stringify(*test.Expected, r.Props, 2) + "\n")
		}
	}
	if test.Message != "" {
		w.Write(" [Message]: " + w.Yellow(test.Message) + "\n")
	}
	if test.Reason != "" {
		w.Write("  [Reason]: " + test.Reason + "\n")
	}
	if stack := strings.TrimSpace(test.StackTrace); stack != "" {
		w.Write("   [Stack]: " + indentLines(stack, "\n        ") + "\n")
	}
}

func (r *VerboseReporter) OnTodo(_ *aspect.TestContext, _ *aspect.TestNode, todo string) {
	r.out.Write("    " + r.out.Yellow("[Todo]:") + " " + todo + "\n")
}

func (r *VerboseReporter) OnLog(_ *aspect.TestContext, _ *aspect.TestNode, log aspect.ReflectedValue) {
	w := r.out
	w.Write("     " + w.Yellow("[Log]:") + " " + stringify(log, r.Props, 12) + "\n")
	if stack := strings.TrimSpace(log.Stack); stack != "" {
		w.Write("   " + w.Yellow("[Stack]:") + " " + indentLines(stack, "\n        ") + "\n")
	}
}

func (r *VerboseReporter) OnFinish(ctx *aspect.TestContext) {
	root := ctx.RootNode()
	if len(root.Children) == 0 {
		return
	}
	w := r.out

	result := w.Red("✖ FAIL")
	if ctx.Pass() {
		result = w.Green("✔ PASS")
	}
	failText := "0 fail"
	if failed := ctx.TestCount - ctx.TestPassCount; failed > 0 {
		failText = w.Red(fmt.Sprintf("%d fail", failed))
	}

	writeProblems(w, ctx)
	WriteSnapshotDiff(w, ctx.SnapshotDiff)

	var total, added, removed, different int
	if diff := ctx.SnapshotDiff; diff != nil {
		total = len(diff.Results)
		added = diff.Count(snapshot.Added)
		removed = diff.Count(snapshot.Removed)
		different = diff.Count(snapshot.Different)
	}

	w.Write(fmt.Sprintf("    [File]: %s\n", ctx.FileName))
	w.Write(fmt.Sprintf("  [Groups]: %s, %d total\n", w.Green(fmt.Sprintf("%d pass", ctx.GroupPassCount)), ctx.GroupCount))
	w.Write(fmt.Sprintf("  [Result]: %s\n", result))
	w.Write(fmt.Sprintf("[Snapshot]: %d total, %d added, %d removed, %d different\n", total, added, removed, different))
	w.Write(fmt.Sprintf(" [Summary]: %s, %s, %d total\n", w.Green(fmt.Sprintf("%d pass", ctx.TestPassCount)), failText, ctx.TestCount))
	w.Write(fmt.Sprintf("    [Time]: %dms\n\n", milliseconds(root)))
	w.Write(strings.Repeat("~", 80) + "\n\n")
}

var _ aspect.Reporter = (*VerboseReporter)(nil)
