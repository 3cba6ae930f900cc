package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newStyleCmd(a *app) *cobra.Command {
	var stylePath, as string
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Print the effective style",
		Long: `Print the style that format would use: the built-in default, or --style merged
over it. The output is a complete style file that can be edited and passed back with --style.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			style, err := a.loadStyle(cmd, stylePath)
			if err != nil {
				return err
			}

			var out []byte
			switch strings.ToLower(as) {
			case "yaml", "yml":
				out, err = yaml.Marshal(style)
			case "toml":
				out, err = toml.Marshal(style)
			case "json":
				out, err = json.MarshalIndent(style, "", "  ")
				out = append(out, '\n')
			default:
				return fmt.Errorf("unknown output %q (want yaml, toml or json)", as)
			}
			if err != nil {
				return fmt.Errorf("failed to encode style: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&stylePath, "style", "", "Path to a style file to merge over the default")
	cmd.Flags().StringVar(&as, "as", "yaml", "Output encoding: yaml, toml or json")
	return cmd
}
