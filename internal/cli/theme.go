package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindlayout/pkg/theme"
)

// themeCommand creates the theme command group.
func (c *CLI) themeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or validate layout themes",
	}

	cmd.AddCommand(c.themeShowCommand())
	cmd.AddCommand(c.themeValidateCommand())

	return cmd
}

// themeShowCommand prints a theme, merged with the defaults.
func (c *CLI) themeShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [theme-file]",
		Short: "Print the default theme, or a theme file merged with the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := theme.Default()
			if len(args) == 1 {
				var err error
				if t, err = theme.Load(args[0]); err != nil {
					return err
				}
			}
			data, err := encodeTheme(t, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml, yaml, json")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// themeValidateCommand checks theme files.
func (c *CLI) themeValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [theme-file...]",
		Short: "Check that theme files parse and hold valid values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				t, err := theme.Load(path)
				if err != nil {
					say(w, markFail, "%s: %v", path, err)
					failed++
					continue
				}
				say(w, markOK, "%s", path)
				field(w, "Line style", string(t.LineStyle))
				field(w, "Font size", fmt.Sprintf("%g", t.FontSize))
				field(w, "Expand btn", fmt.Sprintf("%g", t.ExpandBtnSize))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d theme files invalid", failed, len(args))
			}
			return nil
		},
	}
}

// encodeTheme serializes t in the requested format.
func encodeTheme(t theme.Theme, format string) ([]byte, error) {
	switch format {
	case "toml", "":
		return t.Encode()
	case "yaml", "yml":
		return yaml.Marshal(t)
	case "json":
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown theme format %q (must be toml, yaml or json)", format)
	}
}
