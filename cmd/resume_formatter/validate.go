package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/schemas"
	schemafiles "github.com/jonathan/resume-formatter/schemas"
)

// schemaAliases maps the short --schema names to embedded schema files
var schemaAliases = map[string]string{
	"document": schemafiles.FormattedDocument,
	"sections": schemafiles.SectionModel,
	"parse":    schemafiles.ParseResult,
}

func newValidateCmd(a *app) *cobra.Command {
	var schema string
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check JSON output files against a schema",
		Long: `Validate JSON files written by "format --format json" (schema "document") or by
"parse" (schema "parse") against the embedded JSON Schemas. --schema also accepts the
path of a schema file on disk.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check := func(path string) error {
				if name, ok := schemaAliases[strings.ToLower(schema)]; ok {
					return schemas.ValidateFile(name, path)
				}
				return schemas.ValidateJSON(schema, path)
			}

			failed := 0
			for _, path := range args {
				err := check(path)
				if err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
					continue
				}
				var loadErr *schemas.SchemaLoadError
				if errors.As(err, &loadErr) && loadErr.Path == schema {
					return err
				}
				failed++
				a.logger.Error().Str("file", path).Msg("validation failed")
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schema, "schema", "s", "document", "Schema: document, sections, parse, or a schema file path")
	return cmd
}
