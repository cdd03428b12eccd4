package cmd

import (
	"fmt"

	"github.com/byterings/gitid/internal/gitops"
	"github.com/byterings/gitid/internal/platform"
	"github.com/byterings/gitid/internal/remotes"
	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var (
	remotesDryRun bool
	remotesYes    bool
)

var remotesCmd = &cobra.Command{
	Use:   "remotes",
	Short: "Rewrite repository remotes to use identity host aliases",
	Long: `Scan every repository under your identities' configured paths and
rewrite remote URLs to the canonical aliased SSH form, so each repository
authenticates with the key of the identity that owns its path.

Remotes pointing at hosts gitid does not manage are left untouched.
Failures on individual remotes do not stop the batch.`,
	Example: `  gitid remotes --dry-run   # show proposed changes
  gitid remotes             # confirm, then rewrite
  gitid remotes --yes       # rewrite without confirmation`,
	RunE: runRemotes,
}

func init() {
	rootCmd.AddCommand(remotesCmd)
	remotesCmd.Flags().BoolVarP(&remotesDryRun, "dry-run", "n", false, "Show proposed changes without applying them")
	remotesCmd.Flags().BoolVarP(&remotesYes, "yes", "y", false, "Apply changes without confirmation")
}

func runRemotes(cmd *cobra.Command, args []string) error {
	if !gitops.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	model, err := loadModel()
	if err != nil {
		return err
	}

	plan, err := remotes.Compute(model, gitops.Git{})
	if err != nil {
		return err
	}

	for _, w := range plan.Warnings {
		ui.Warning(w)
	}

	if len(plan.Changes) == 0 {
		ui.Success("All remotes are up to date")
		return nil
	}

	fmt.Printf("Proposed changes (%d):\n\n", len(plan.Changes))
	for _, c := range plan.Changes {
		fmt.Printf("  %s (%s, identity '%s')\n", platform.ShortenPath(c.Repo), c.Remote, c.Label)
		fmt.Printf("    old: %s\n", c.OldURL)
		fmt.Printf("    new: %s\n", c.NewURL)
	}
	fmt.Println()

	if remotesDryRun {
		ui.Info("Dry run, no remotes were changed")
		return nil
	}

	if !remotesYes {
		confirmed, err := ui.PromptConfirmation("Apply these changes?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("No changes made.")
			return nil
		}
	}

	applied, failed := remotes.Apply(plan, gitops.Git{})
	ui.Success(fmt.Sprintf("%d remote(s) updated", applied))
	if failed > 0 {
		ui.Error(fmt.Sprintf("%d remote(s) failed to update", failed))
	}
	return nil
}
