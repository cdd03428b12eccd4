package cmd

import (
	"fmt"
	"os"

	"github.com/byterings/gitid/internal/apply"
	"github.com/byterings/gitid/internal/config"
	"github.com/byterings/gitid/internal/platform"
	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var applyDryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Compile identities into SSH and Git configuration",
	Long: `Generate SSH host aliases and Git identity fragments from the
identities file and merge them into your configuration:

  - a managed block at the top of ~/.ssh/config
  - one gitconfig fragment per identity under ~/.gitid/git/
  - a managed block in ~/.gitconfig with conditional includes

Content outside the managed blocks is never touched. Re-running apply
with unchanged identities is a no-op.`,
	Example: `  gitid apply
  gitid apply --dry-run   # print what would be written`,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVarP(&applyDryRun, "dry-run", "n", false, "Print generated content instead of writing files")
}

func runApply(cmd *cobra.Command, args []string) error {
	model, err := loadModel()
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	report, err := apply.Run(apply.Options{
		Model:        model,
		SSHConfig:    settings.SSHConfig,
		GitConfig:    settings.GitConfig,
		FragmentPath: settings.FragmentPath,
		DryRun:       applyDryRun,
		Out:          os.Stdout,
	})
	if err != nil {
		return err
	}

	for _, w := range report.Warnings {
		ui.Warning(w)
	}
	for _, e := range report.Errors {
		ui.Error(e.Error())
	}

	if applyDryRun {
		ui.Info("Dry run, no files were written")
		return nil
	}

	for _, path := range report.Written {
		fmt.Printf("  wrote %s\n", platform.ShortenPath(path))
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("%d file(s) could not be written", len(report.Errors))
	}

	ui.Success("Configuration applied")
	return nil
}
