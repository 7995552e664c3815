package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	objectwire "github.com/objectwire/objectwire"
	"github.com/spf13/cobra"
)

type missingFieldReport struct {
	Target string `json:"target"`
	Field  string `json:"field"`
	Value  any    `json:"value"`
}

type dumpReport struct {
	Missing     []missingFieldReport `json:"missing,omitempty"`
	Diagnostics []objectwire.Issue   `json:"diagnostics,omitempty"`
	Issues      objectwire.Issues    `json:"issues,omitempty"`
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Resolve a document and report missing fields and diagnostics instead of the resolved value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			var report dumpReport
			opts := objectwire.NewOptions().
				WithMissingFieldHandler(func(target any, field string, value any) {
					report.Missing = append(report.Missing, missingFieldReport{
						Target: fmt.Sprintf("%T", target),
						Field:  field,
						Value:  value,
					})
				}).
				WithDiagnostics(func(iss objectwire.Issue) {
					report.Diagnostics = append(report.Diagnostics, iss)
				})

			src, err := sourceFor(filename, data)
			if err != nil {
				return err
			}

			_, err = objectwire.Resolve(context.Background(), src, nil, opts)
			if err != nil {
				if iss, ok := objectwire.AsIssues(err); ok {
					report.Issues = iss
				} else {
					return err
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	return cmd
}
