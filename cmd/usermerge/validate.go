package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/usermerge/internal/output"
	"github.com/jonathan/usermerge/internal/schemas"
)

func newValidateCmd(a *app) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate <file.json>...",
		Short: "Check existing output documents against the user list schema",
		Long:  "Validate one or more previously written output documents. By default the built-in user list schema is used; --schema validates against a schema file instead.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			failed := 0
			for _, path := range args {
				var err error
				if schemaPath != "" {
					err = schemas.ValidateJSON(schemaPath, path)
				} else {
					_, err = output.Verify(path)
				}

				if err != nil {
					failed++
					a.logger.Error("Output document is invalid", "path", path, "error", err)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to a JSON Schema file to validate against instead of the built-in schema")

	return cmd
}
