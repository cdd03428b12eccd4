package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/byterings/gitid/internal/config"
	"github.com/byterings/gitid/internal/gitops"
	"github.com/byterings/gitid/internal/keygen"
	"github.com/byterings/gitid/internal/managed"
	"github.com/byterings/gitid/internal/platform"
	"github.com/byterings/gitid/internal/sshgen"
	"github.com/byterings/gitid/internal/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the gitid installation and configuration",
	Long: `Run diagnostics: the identities file parses, SSH keys exist with
sane permissions, managed blocks are present in the target files, and no
user-defined Host stanza shadows a configured hostname.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	problems := 0

	if gitops.IsInstalled() {
		ui.Success("git is installed")
	} else {
		ui.Error("git is not installed")
		problems++
	}

	model, err := loadModel()
	if err != nil {
		ui.Error(err.Error())
		return fmt.Errorf("cannot continue without a valid identities file")
	}
	ui.Success(fmt.Sprintf("identities file parses (%d identities)", len(model.Identities)))

	for _, id := range model.Identities {
		if id.SSHKeyPath == "" {
			ui.Warning(fmt.Sprintf("identity '%s' has no SSH key", id.Label))
			continue
		}
		warning, err := keygen.ValidateKeyPath(id.SSHKeyPath)
		if err != nil {
			ui.Error(fmt.Sprintf("identity '%s': %v", id.Label, err))
			problems++
			continue
		}
		if warning != "" {
			ui.Warning(warning)
			continue
		}
		ui.Success(fmt.Sprintf("identity '%s' key OK", id.Label))
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	for _, target := range []string{settings.SSHConfig, settings.GitConfig} {
		content, err := os.ReadFile(target)
		switch {
		case os.IsNotExist(err):
			ui.Warning(fmt.Sprintf("%s does not exist yet, run: gitid apply", platform.ShortenPath(target)))
		case err != nil:
			ui.Error(fmt.Sprintf("cannot read %s: %v", target, err))
			problems++
		case !strings.Contains(string(content), managed.StartMarker):
			ui.Warning(fmt.Sprintf("%s has no managed block, run: gitid apply", platform.ShortenPath(target)))
		default:
			ui.Success(fmt.Sprintf("managed block present in %s", platform.ShortenPath(target)))
		}
	}

	if content, err := os.ReadFile(settings.SSHConfig); err == nil {
		for _, w := range sshgen.ScanShadowedHosts(managed.Unmanaged(string(content)), model) {
			ui.Warning(w)
		}
	}

	fmt.Println()
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	ui.Success("All checks passed")
	return nil
}
