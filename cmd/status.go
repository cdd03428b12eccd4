package cmd

import (
	"fmt"
	"os"

	"github.com/byterings/gitid/internal/gitops"
	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/platform"
	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which identity applies here",
	Long: `Display the identity that owns the current directory, the default
identity, and the enclosing repository if any. This is the identity whose
fragment Git will include for commits made here.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	model, err := loadModel()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not determine current directory: %w", err)
	}

	printLocation(cwd)
	printEffective(model, cwd)
	printDefault(model)

	return nil
}

func printLocation(cwd string) {
	fmt.Println()
	fmt.Println("Current Location")
	fmt.Println("────────────────")

	repoRoot := gitops.FindGitRoot(cwd)
	if repoRoot == "" {
		fmt.Printf("  Path: %s\n", platform.ShortenPath(cwd))
		fmt.Println("  Not inside a git repository")
	} else {
		fmt.Printf("  Repo: %s\n", platform.ShortenPath(repoRoot))
	}
}

func printEffective(model *identity.Model, cwd string) {
	fmt.Println()
	fmt.Println("Effective Identity")
	fmt.Println("──────────────────")

	owner := model.Owner(cwd)
	if owner == nil {
		fmt.Println("  No identity claims this path; the default applies")
		return
	}

	fmt.Printf("  Using: %s\n", owner.Label)
	if owner.Email != "" {
		fmt.Printf("  Email: %s\n", owner.Email)
	}
	if owner.SSHKeyPath == "" {
		ui.Warning("this identity has no SSH key configured")
	}
}

func printDefault(model *identity.Model) {
	fmt.Println()
	fmt.Println("Default Identity")
	fmt.Println("────────────────")

	def := model.DefaultIdentity()
	if def == nil {
		fmt.Println("  No identities configured")
		return
	}
	fmt.Printf("  %s (%s)\n", def.Label, def.Email)
}
