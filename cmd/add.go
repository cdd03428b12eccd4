package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/byterings/gitid/internal/config"
	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/keygen"
	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var (
	addName  string
	addEmail string
	addKey   string
	addHosts []string
	addPaths []string
)

var addCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Add a new identity",
	Long: `Add a new identity to the identities file.

With no flags, an interactive wizard prompts for every field. With a label
argument and flags, the identity is created non-interactively.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  gitid add                         # interactive
  gitid add work --name "Jane Doe" --email jane@work.com \
      --host github.com --path ~/company`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addName, "name", "", "Full name for Git commits")
	addCmd.Flags().StringVar(&addEmail, "email", "", "Email for Git commits")
	addCmd.Flags().StringVar(&addKey, "key", "", "Path to SSH private key")
	addCmd.Flags().StringArrayVar(&addHosts, "host", nil, "Bare hostname (repeatable)")
	addCmd.Flags().StringArrayVar(&addPaths, "path", nil, "Directory this identity applies under (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	model, _, err := config.LoadModel()
	if err != nil {
		// First identity: start from an empty model
		var cfgErr *identity.ConfigError
		if !errors.As(err, &cfgErr) {
			return err
		}
		model = identity.NewModel()
	}

	var id identity.Identity
	if len(args) == 1 {
		id = identity.Identity{
			Label:      args[0],
			Name:       addName,
			Email:      addEmail,
			SSHKeyPath: addKey,
			Hosts:      addHosts,
			Paths:      addPaths,
		}
	} else {
		id, err = ui.PromptIdentityInfo()
		if err != nil {
			return err
		}
		if err := promptKey(&id); err != nil {
			return err
		}
	}

	if err := model.Add(id); err != nil {
		return err
	}
	if len(model.Identities) == 1 {
		model.Default = id.Label
	}

	if err := saveModel(model); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Identity '%s' added", id.Label))
	fmt.Println("\nApply the configuration with: gitid apply")
	return nil
}

func promptKey(id *identity.Identity) error {
	choice, err := ui.PromptSSHKeyOption()
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(choice, "Generate"):
		path, err := keygen.DefaultKeyPath(id.Label)
		if err != nil {
			return err
		}
		created, err := keygen.Generate(path, id.Email)
		if err != nil {
			return err
		}
		if created {
			ui.Success("Key pair generated at " + path)
		} else {
			ui.Info("Key already exists at " + path)
		}
		id.SSHKeyPath = path

	case strings.HasPrefix(choice, "Use existing"):
		path, err := ui.PromptExistingKeyPath()
		if err != nil {
			return err
		}
		if warning, err := keygen.ValidateKeyPath(path); err != nil {
			return err
		} else if warning != "" {
			ui.Warning(warning)
		}
		id.SSHKeyPath = path
	}

	return nil
}
