package reporter

import (
	"fmt"
	"strconv"

	"github.com/AndreyAkinshin/aspect/internal/output"
	"github.com/AndreyAkinshin/aspect/pkg/aspect"
)

// SummaryReporter writes one line per file and details only for failing
// groups. It suits CI runs where per-test output is noise.
type SummaryReporter struct {
	aspect.NopReporter

	out   *output.Writer
	Props aspect.StringifyProps
	// Logs enables printing captured logs.
	Logs bool
	// Table prints a per-group table after the summary line.
	Table bool
}

// NewSummary returns a SummaryReporter writing to w with logging enabled.
func NewSummary(w *output.Writer) *SummaryReporter {
	return &SummaryReporter{out: w, Props: DefaultProps(), Logs: true}
}

func (r *SummaryReporter) OnFinish(ctx *aspect.TestContext) {
	w := r.out
	root := ctx.RootNode()
	groups := childGroups(ctx, root)
	counts := fmt.Sprintf("Pass: %d / %d Todo: %d Time: %dms\n",
		ctx.TestPassCount, ctx.TestCount, countTodos(ctx), milliseconds(root))

	if ctx.Pass() {
		w.Write(w.GreenBold("✔ "+ctx.FileName+" ") + counts)
		if r.Logs {
			r.writeLogs(root.Logs)
			for _, test := range directTests(ctx, root) {
				r.writeLogs(test.Logs)
			}
			for _, group := range groups {
				r.writeLogs(group.Logs)
				for _, test := range directTests(ctx, group) {
					r.writeLogs(test.Logs)
				}
			}
		}
	} else {
		w.Write(w.RedBold("❌ "+ctx.FileName+" ") + counts)
		r.writeFailures(directTests(ctx, root))
		for _, group := range groups {
			if group.Pass {
				continue
			}
			w.Write("  " + w.RedBold("Failed:") + " " + ctx.Path(group) + "\n")
			if r.Logs {
				r.writeLogs(group.Logs)
			}
			r.writeFailures(descendantTests(ctx, group))
		}
	}

	if r.Table && len(groups) > 0 {
		r.writeTable(ctx, groups)
	}

	writeProblems(w, ctx)
	WriteSnapshotDiff(w, ctx.SnapshotDiff)
}

func (r *SummaryReporter) writeFailures(tests []*aspect.TestNode) {
	w := r.out
	for _, test := range tests {
		if test.Pass {
			continue
		}
		w.Write(w.RedBold("    ❌ "+test.Name) + " - " + test.Message + "\n")
		if test.Actual != nil {
			w.Write(w.RedBold("      [Actual]  :") + " " + stringify(*test.Actual, r.Props, 2) + "\n")
		}
		if test.Expected != nil {
			not := ""
			if test.Expected.Negated {
				not = "Not "
			}
			w.Write(w.GreenBold("      [Expected]:") + " " + not + stringify(*test.Expected, r.Props, 2) + "\n")
		}
		if r.Logs {
			r.writeLogs(test.Logs)
		}
	}
}

func (r *SummaryReporter) writeLogs(logs []aspect.ReflectedValue) {
	for _, log := range logs {
		r.out.Write(r.out.Yellow("     [Log]:") + " " + stringify(log, r.Props, 12) + "\n")
	}
}

func (r *SummaryReporter) writeTable(ctx *aspect.TestContext, groups []*aspect.TestNode) {
	rows := make([][]string, 0, len(groups))
	for _, group := range groups {
		tests := descendantTests(ctx, group)
		passed := 0
		for _, test := range tests {
			if test.Pass {
				passed++
			}
		}
		status := "pass"
		if !group.Pass {
			status = "fail"
		}
		rows = append(rows, []string{
			group.Name,
			status,
			strconv.Itoa(passed) + "/" + strconv.Itoa(len(tests)),
			strconv.FormatInt(milliseconds(group), 10) + "ms",
		})
	}
	r.out.Table([]string{"Group", "Result", "Tests", "Time"}, rows)
}

// descendantTests returns every test below g in definition order.
func descendantTests(ctx *aspect.TestContext, g *aspect.TestNode) []*aspect.TestNode {
	var tests []*aspect.TestNode
	for _, id := range g.Children {
		n := ctx.Node(id)
		if n.IsGroup() {
			tests = append(tests, descendantTests(ctx, n)...)
		} else {
			tests = append(tests, n)
		}
	}
	return tests
}

var _ aspect.Reporter = (*SummaryReporter)(nil)
