package cmd

import (
	"fmt"

	"github.com/byterings/gitid/internal/config"
	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive first-time setup",
	Long: `Walk through creating your identities and write the identities file.

Run 'gitid apply' afterwards to compile the configuration into your SSH
and Git config files.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	exists, err := config.IdentitiesExist()
	if err != nil {
		return err
	}
	if exists {
		path, _ := config.GetIdentitiesPath()
		ui.Info("Identities file already exists at " + path)
		overwrite, err := ui.PromptConfirmation("Start over and replace it?")
		if err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	}

	model := identity.NewModel()

	fmt.Println("Let's set up your Git identities.")
	for {
		id, err := ui.PromptIdentityInfo()
		if err != nil {
			return err
		}
		if err := promptKey(&id); err != nil {
			return err
		}
		if err := model.Add(id); err != nil {
			ui.Error(err.Error())
			continue
		}

		more, err := ui.PromptConfirmation("Add another identity?")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	if len(model.Identities) == 0 {
		return fmt.Errorf("no identities configured")
	}

	// First identity is the default unless the user picks another
	model.Default = model.Identities[0].Label
	if len(model.Identities) > 1 {
		label, err := promptDefault(model)
		if err != nil {
			return err
		}
		model.Default = label
	}

	if err := saveModel(model); err != nil {
		return err
	}

	path, _ := config.GetIdentitiesPath()
	ui.Success("Identities written to " + path)

	applyNow, err := ui.PromptConfirmation("Apply SSH and Git configuration now?")
	if err != nil {
		return err
	}
	if applyNow {
		return runApply(cmd, nil)
	}

	fmt.Println("\nApply later with: gitid apply")
	return nil
}

func promptDefault(model *identity.Model) (string, error) {
	labels := make([]string, len(model.Identities))
	for i, id := range model.Identities {
		labels[i] = id.Label
	}

	return ui.PromptSelect("Which identity is the default?", labels)
}
