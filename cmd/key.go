package cmd

import (
	"fmt"

	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/keygen"
	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var keyAll bool

var keyCmd = &cobra.Command{
	Use:   "key [label]",
	Short: "Generate SSH keys for identities",
	Long: `Generate an Ed25519 key pair for an identity and record its path in
the identities file. With --all, keys are generated for every identity
that has none; a failure for one identity does not block the others.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  gitid key work
  gitid key --all`,
	RunE: runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.Flags().BoolVar(&keyAll, "all", false, "Generate keys for all identities without one")
}

func runKey(cmd *cobra.Command, args []string) error {
	model, err := loadModel()
	if err != nil {
		return err
	}

	if !keyAll {
		if len(args) != 1 {
			return fmt.Errorf("specify an identity label or --all")
		}
		id := model.Find(args[0])
		if id == nil {
			return fmt.Errorf("identity '%s' not found\nRun: gitid list", args[0])
		}
		if err := generateFor(model, args[0]); err != nil {
			return err
		}
		return saveModel(model)
	}

	failures := 0
	for _, id := range model.Identities {
		if id.SSHKeyPath != "" {
			continue
		}
		if err := generateFor(model, id.Label); err != nil {
			ui.Error(fmt.Sprintf("key for '%s': %v", id.Label, err))
			failures++
		}
	}
	if err := saveModel(model); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d key(s) could not be generated", failures)
	}
	ui.Success("Keys generated")
	return nil
}

func generateFor(model *identity.Model, label string) error {
	id := model.Find(label)

	path := id.SSHKeyPath
	if path == "" {
		var err error
		path, err = keygen.DefaultKeyPath(label)
		if err != nil {
			return err
		}
	}

	comment := id.Email
	if comment == "" {
		comment = label + "@gitid"
	}

	created, err := keygen.Generate(path, comment)
	if err != nil {
		return err
	}
	if created {
		ui.Success(fmt.Sprintf("Key for '%s' generated at %s", label, path))
	} else {
		ui.Info(fmt.Sprintf("Key for '%s' already exists at %s", label, path))
	}
	id.SSHKeyPath = path
	return nil
}
