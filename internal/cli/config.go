package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/aspect/internal/config"
	"github.com/AndreyAkinshin/aspect/internal/errors"
	"github.com/AndreyAkinshin/aspect/internal/output"
)

func newConfigCmd(w *output.Writer, opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration aspect runs with: the config file, overlaid with
ASPECT_* environment variables, with defaults filled in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath()
			cfg, warnings, err := config.LoadAndValidate(path)
			for _, warning := range warnings {
				w.Warning("%s", warning)
			}
			if err != nil {
				return &errors.AspectError{Kind: errors.KindConfig, Message: "invalid configuration", Cause: err}
			}

			var data []byte
			switch format {
			case "yaml":
				data, err = yaml.Marshal(cfg)
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
			default:
				return errors.Configf("unsupported format %q (use yaml or json)", format)
			}
			if err != nil {
				return errors.Wrap(err, "failed to encode configuration")
			}

			if format == "yaml" {
				if path == "" {
					w.Hint("# no config file; defaults and environment")
				} else {
					w.Hint("# %s", path)
				}
			}
			w.Println("%s", strings.TrimRight(string(data), "\n"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml or json)")
	return cmd
}
