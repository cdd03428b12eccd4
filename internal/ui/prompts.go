package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/byterings/gitid/internal/identity"
)

// PromptIdentityInfo prompts for a new identity interactively
func PromptIdentityInfo() (identity.Identity, error) {
	var id identity.Identity

	labelPrompt := &survey.Input{
		Message: "Label (e.g., work, personal, freelance):",
		Help:    "Short name for this identity - lowercase, no spaces",
	}
	labelValidator := func(val interface{}) error {
		if str, ok := val.(string); ok {
			if !identity.ValidLabel(str) {
				return fmt.Errorf("use lowercase letters, digits, '-' or '_'")
			}
		}
		return nil
	}
	if err := survey.AskOne(labelPrompt, &id.Label, survey.WithValidator(survey.Required), survey.WithValidator(labelValidator)); err != nil {
		return id, err
	}

	namePrompt := &survey.Input{
		Message: "Full name:",
		Help:    "Name used for Git commits (e.g., John Doe)",
	}
	if err := survey.AskOne(namePrompt, &id.Name); err != nil {
		return id, err
	}

	emailPrompt := &survey.Input{
		Message: "Email address:",
		Help:    "Email used for Git commits (e.g., john@example.com)",
	}
	emailValidator := func(val interface{}) error {
		if str, ok := val.(string); ok && str != "" {
			if !isValidEmail(str) {
				return fmt.Errorf("invalid email format")
			}
		}
		return nil
	}
	if err := survey.AskOne(emailPrompt, &id.Email, survey.WithValidator(emailValidator)); err != nil {
		return id, err
	}

	hostsPrompt := &survey.Input{
		Message: "Hosts (comma separated):",
		Default: "github.com",
		Help:    "Bare hostnames this identity should be used for",
	}
	var hosts string
	if err := survey.AskOne(hostsPrompt, &hosts); err != nil {
		return id, err
	}
	id.Hosts = splitList(hosts)

	pathsPrompt := &survey.Input{
		Message: "Paths (comma separated):",
		Help:    "Directories under which this identity applies (e.g., ~/company)",
	}
	var paths string
	if err := survey.AskOne(pathsPrompt, &paths); err != nil {
		return id, err
	}
	id.Paths = splitList(paths)

	return id, nil
}

// PromptSSHKeyOption prompts for SSH key setup option
func PromptSSHKeyOption() (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: "How do you want to set up the SSH key?",
		Options: []string{
			"Generate new key pair (Recommended)",
			"Use existing key",
			"Skip for now (add manually later)",
		},
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return choice, nil
}

// PromptExistingKeyPath prompts for an existing SSH key path
func PromptExistingKeyPath() (string, error) {
	var path string
	prompt := &survey.Input{
		Message: "Path to existing SSH private key:",
		Help:    "Full path to your private key file (e.g., ~/.ssh/id_ed25519)",
	}
	if err := survey.AskOne(prompt, &path, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return path, nil
}

// PromptSelect prompts to pick one option from a list
func PromptSelect(message string, options []string) (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return choice, nil
}

// PromptConfirmation prompts for yes/no confirmation
func PromptConfirmation(message string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// isValidEmail checks if email format is valid
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}
