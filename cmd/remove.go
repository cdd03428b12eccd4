package cmd

import (
	"fmt"

	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <label>",
	Aliases: []string{"rm"},
	Short:   "Remove an identity",
	Long: `Remove an identity from the identities file.

Run 'gitid apply' afterwards to drop its stanzas from the generated
configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	label := args[0]

	model, err := loadModel()
	if err != nil {
		return err
	}

	if model.Find(label) == nil {
		return fmt.Errorf("identity '%s' not found\nRun: gitid list", label)
	}
	if len(model.Identities) == 1 {
		return fmt.Errorf("'%s' is the only identity; run 'gitid setup' to start over", label)
	}

	oldDefault := model.Default
	model.Remove(label)

	if err := saveModel(model); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Identity '%s' removed", label))
	if model.Default != oldDefault && model.Default != "" {
		ui.Info("Default identity is now '" + model.Default + "'")
	}
	fmt.Println("\nUpdate generated config with: gitid apply")
	return nil
}
