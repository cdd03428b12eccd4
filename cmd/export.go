package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the identities file to stdout",
	Long: `Serialize the current identity model to stdout in the identities
file format, suitable for backup or for seeding another machine.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	model, err := loadModel()
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(model.Marshal())
	return err
}
