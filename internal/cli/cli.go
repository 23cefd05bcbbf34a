// Package cli implements the aspect command-line tool for inspecting,
// comparing and validating snapshot baselines and configuration.
package cli

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/aspect/internal/config"
	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/output"
	"github.com/AndreyAkinshin/aspect/internal/snapshot"
)

// Version is set at build time.
var Version = "dev"

// exitStatus ends a command with a non-zero code and no message.
type exitStatus int

func (e exitStatus) Error() string {
	return "exit status " + strconv.Itoa(int(e))
}

// globalOptions holds the persistent flags.
type globalOptions struct {
	ConfigPath string
	Quiet      bool
	NoColor    bool
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return run(args, output.New())
}

func run(args []string, w *output.Writer) int {
	root := newRootCmd(w)
	root.SetArgs(args)
	root.SetOut(w.Out())
	root.SetErr(w.Err())

	err := root.Execute()
	if err == nil {
		return errors.ExitSuccess
	}

	var status exitStatus
	if stderrors.As(err, &status) {
		return int(status)
	}
	w.ErrorPrefix("%v", err)

	var ae *errors.AspectError
	if stderrors.As(err, &ae) {
		return ae.ExitCode()
	}
	// Flag and argument errors from cobra.
	return errors.ExitConfigError
}

func newRootCmd(w *output.Writer) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "aspect",
		Short: "Snapshot and configuration tooling for aspect test suites",
		Long: `aspect inspects the snapshot baselines written by aspect test runs.

Locations are snapshot files (.yaml, .yml, .json, .msgpack) or Redis hashes
written as redis://[user:password@]host:port/db?key=name (rediss:// for TLS).`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			w.SetQuiet(opts.Quiet)
			if opts.NoColor {
				w.SetColor(false)
			}
		},
	}
	root.SetVersionTemplate("aspect {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default is ./aspect.yaml, ./aspect.yml or ./aspect.json)")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress informational output")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newDiffCmd(w),
		newCopyCmd(w),
		newValidateCmd(w, opts),
		newConfigCmd(w, opts),
		newVersionCmd(w),
	)
	return root
}

func newVersionCmd(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the aspect version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w.Println("aspect %s", Version)
		},
	}
}

// configPath returns the --config flag, or the config file found in the
// working directory.
func (o *globalOptions) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return config.Find(".")
}

// openStore resolves a location to a snapshot store.
func openStore(location string) (snapshot.Store, error) {
	if strings.HasPrefix(location, "redis://") || strings.HasPrefix(location, "rediss://") {
		store, err := snapshot.NewRedisStoreFromURL(location)
		if err != nil {
			return nil, errors.Configf("invalid redis location %q: %v", location, err)
		}
		return store, nil
	}
	store, err := snapshot.NewFileStore(location)
	if err != nil {
		return nil, &errors.AspectError{Kind: errors.KindConfig, Message: location, Cause: err}
	}
	return store, nil
}

func describeStore(store snapshot.Store) string {
	switch s := store.(type) {
	case *snapshot.FileStore:
		return s.Path
	case *snapshot.RedisStore:
		return "redis hash " + strconv.Quote(s.Key())
	default:
		return fmt.Sprintf("%T", store)
	}
}
