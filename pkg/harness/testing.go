package harness

import (
	"context"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/aspect/pkg/aspect"
)

// RunT runs tc inside go test and reports every failed test, context error
// and usage error through t.Errorf.
func RunT(t testing.TB, tc *aspect.TestContext) {
	t.Helper()
	reportT(t, tc, tc.Run(context.Background()))
}

// RunT runs tc through the harness, saving snapshots when configured, and
// reports failures through t.Errorf.
func (h *Harness) RunT(t testing.TB, tc *aspect.TestContext) {
	t.Helper()
	reportT(t, tc, h.Run(context.Background(), tc))
}

func reportT(t testing.TB, tc *aspect.TestContext, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: %v", tc.FileName, err)
	}
	for _, n := range tc.Nodes() {
		if n.IsGroup() || n.Pass || n.State != aspect.StateFinished {
			continue
		}
		t.Errorf("%s: %s: %s", tc.FileName, tc.Path(n), failureText(n))
	}
	for _, p := range tc.Errors {
		t.Errorf("%s: %s error: %s", tc.FileName, p.Type, p.Message)
	}
}

func failureText(n *aspect.TestNode) string {
	var b strings.Builder
	if n.Message == "" {
		b.WriteString("failed")
	} else {
		b.WriteString(n.Message)
	}
	if n.Reason != "" {
		b.WriteString(" (" + n.Reason + ")")
	}
	if n.Actual != nil {
		b.WriteString("\n\tactual:   " + n.Actual.String())
	}
	if n.Expected != nil {
		not := ""
		if n.Expected.Negated {
			not = "not "
		}
		b.WriteString("\n\texpected: " + not + n.Expected.String())
	}
	return b.String()
}
