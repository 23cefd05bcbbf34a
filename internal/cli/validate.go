package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/aspect/internal/config"
	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/output"
	"github.com/AndreyAkinshin/aspect/internal/snapshot"
)

func newValidateCmd(w *output.Writer, opts *globalOptions) *cobra.Command {
	var listKeys bool
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate config and snapshot files",
		Long: `Validate each file against its schema. Files named aspect.yaml, aspect.yml
or aspect.json are checked as configuration; anything else as a snapshot file.
Without arguments the active config file is validated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				path := opts.configPath()
				if path == "" {
					return errors.NotFound("config file", "aspect.yaml")
				}
				files = []string{path}
			}

			failed := 0
			for _, file := range files {
				if err := validateFile(cmd.Context(), w, file, listKeys); err != nil {
					w.ErrorPrefix("%s: %v", file, err)
					failed++
				}
			}
			if failed > 0 {
				return exitStatus(errors.ExitConfigError)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&listKeys, "keys", false, "list the snapshot names of each valid snapshot file")
	return cmd
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range config.FileNames {
		if base == name {
			return true
		}
	}
	return false
}

func validateFile(ctx context.Context, w *output.Writer, path string, listKeys bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("file", path)
		}
		return errors.Wrap(err, "failed to read "+path)
	}

	if isConfigFile(path) {
		_, warnings, err := config.LoadAndValidate(path)
		for _, warning := range warnings {
			w.Warning("%s: %s", path, warning)
		}
		if err != nil {
			return &errors.AspectError{Kind: errors.KindValidation, Message: "invalid configuration", Cause: err}
		}
		w.ValidationSuccess("%s: configuration is valid.", path)
		if len(warnings) > 0 {
			w.SummaryItem("Warnings", strconv.Itoa(len(warnings)))
		}
		return nil
	}

	store, err := snapshot.NewFileStore(path)
	if err != nil {
		return &errors.AspectError{Kind: errors.KindValidation, Message: "not a config or snapshot file", Cause: err}
	}
	snaps, err := store.Load(ctx)
	if err != nil {
		return &errors.AspectError{Kind: errors.KindValidation, Message: "invalid snapshot file", Cause: err}
	}
	w.ValidationSuccess("%s: snapshot file is valid.", path)
	w.SummaryItem("Snapshots", strconv.Itoa(len(snaps)))
	if listKeys {
		keys := make([]string, 0, len(snaps))
		for key := range snaps {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		w.List(keys)
	}
	return nil
}
