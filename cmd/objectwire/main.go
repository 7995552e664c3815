// Command objectwire resolves an identity graph document from a file and
// prints the result.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "objectwire",
		Short: "Resolve identity-graph documents (@id/@ref/@type) into Go values",
	}

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newDumpCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
