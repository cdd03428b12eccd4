package cmd

import (
	"fmt"
	"os"

	"github.com/byterings/gitid/internal/logging"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gitid",
	Short: "Map directories to Git identities",
	Long: `gitid maps directories to Git identities (name, email, SSH key, hosts)
and compiles that mapping into your SSH and Git configuration.

Generated content lives inside clearly marked managed blocks; everything
else in your config files is left untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(func() {
		logging.SetVerbose(verbose)
	})
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command. Fatal errors exit non-zero with a
// single-line diagnostic.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
