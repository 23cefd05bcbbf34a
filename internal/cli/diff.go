package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/output"
	"github.com/AndreyAkinshin/aspect/internal/snapshot"
	"github.com/AndreyAkinshin/aspect/pkg/reporter"
)

func newDiffCmd(w *output.Writer) *cobra.Command {
	var exitCode, table bool
	cmd := &cobra.Command{
		Use:   "diff <baseline> <current>",
		Short: "Compare two snapshot baselines",
		Long: `Compare the snapshots at <baseline> with those at <current>.

Entries only in <current> are added, entries only in <baseline> are removed,
and entries present in both with different text are shown line by line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseline, err := loadLocation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			current, err := loadLocation(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			rs := snapshot.Diff(baseline, current)
			w.Section("snapshot diff")
			reporter.WriteSnapshotDiff(w, rs)
			if table {
				writeDiffTable(w, rs)
			}
			writeDiffSummary(w, rs)

			if exitCode && rs.Changed() {
				return exitStatus(errors.ExitFailure)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with status 1 when the baselines differ")
	cmd.Flags().BoolVar(&table, "table", false, "list every entry with its status")
	return cmd
}

func loadLocation(ctx context.Context, location string) (snapshot.Snapshots, error) {
	store, err := openStore(location)
	if err != nil {
		return nil, err
	}
	snaps, err := store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to load %s", describeStore(store)))
	}
	return snaps, nil
}

func writeDiffTable(w *output.Writer, rs *snapshot.ResultSet) {
	rows := make([][]string, 0, len(rs.Results))
	for _, name := range rs.Names() {
		result := rs.Results[name]
		changed := 0
		for _, c := range result.Changes {
			if c.Added || c.Removed {
				changed++
			}
		}
		rows = append(rows, []string{name, result.Kind.String(), strconv.Itoa(changed)})
	}
	w.Table([]string{"Snapshot", "Status", "Changed"}, rows)
}

func writeDiffSummary(w *output.Writer, rs *snapshot.ResultSet) {
	w.SummaryItem("Total", strconv.Itoa(len(rs.Results)))
	w.SummaryItem("Added", strconv.Itoa(rs.Count(snapshot.Added)))
	w.SummaryItem("Removed", strconv.Itoa(rs.Count(snapshot.Removed)))
	if n := rs.Count(snapshot.Different); n > 0 {
		w.SummaryFailed("Different", strconv.Itoa(n))
	} else {
		w.SummaryPassed("Different", "0")
	}
}
