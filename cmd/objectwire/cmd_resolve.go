package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	objectwire "github.com/objectwire/objectwire"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var asJSONObjects bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Resolve a JSON or YAML identity graph and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			opts := objectwire.NewOptions().
				WithReturningJSONObjects(asJSONObjects).
				WithMaxDepth(maxDepth).
				WithDiagnostics(func(iss objectwire.Issue) {
					logger.Warn("diagnostic", "code", iss.Code, "message", iss.Message, "path", iss.Path)
				})

			src, err := sourceFor(filename, data)
			if err != nil {
				return err
			}

			v, err := objectwire.Resolve(context.Background(), src, nil, opts)
			if err != nil {
				if iss, ok := objectwire.AsIssues(err); ok {
					for _, i := range iss {
						logger.Error("resolve issue", "code", i.Code, "message", i.Message, "path", i.Path)
					}
				}
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}

	cmd.Flags().BoolVar(&asJSONObjects, "json-objects", false, "return generic map[string]any instead of typed structs")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "cap nesting depth (0 = unlimited)")
	return cmd
}

func sourceFor(filename string, data []byte) (objectwire.Source, error) {
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		return objectwire.YAMLBytes(data)
	default:
		return objectwire.JSONBytes(data), nil
	}
}
