package cmd

import (
	"fmt"

	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var defaultCmd = &cobra.Command{
	Use:   "default <label>",
	Short: "Set the default identity",
	Long: `Set which identity is used for unprefixed hosts and as the global
Git user. Run 'gitid apply' afterwards to regenerate the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runDefault,
}

func init() {
	rootCmd.AddCommand(defaultCmd)
}

func runDefault(cmd *cobra.Command, args []string) error {
	label := args[0]

	model, err := loadModel()
	if err != nil {
		return err
	}

	if model.Find(label) == nil {
		return fmt.Errorf("identity '%s' not found\nRun: gitid list", label)
	}

	model.Default = label
	if err := saveModel(model); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Default identity set to '%s'", label))
	fmt.Println("\nUpdate generated config with: gitid apply")
	return nil
}
