package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/output"
)

func newCopyCmd(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <source> <destination>",
		Short: "Replace the snapshots at destination with those at source",
		Long: `Copy a snapshot baseline between locations, for example to publish a
reviewed file to a shared Redis hash:

  aspect copy testdata/snapshots.yaml redis://localhost:6379/0?key=suite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := loadLocation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			dst, err := openStore(args[1])
			if err != nil {
				return err
			}
			if err := dst.Save(cmd.Context(), snaps); err != nil {
				return errors.Wrap(err, "failed to save "+describeStore(dst))
			}
			w.Success("Copied %d snapshots to %s", len(snaps), describeStore(dst))
			return nil
		},
	}
}
