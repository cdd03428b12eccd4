package ui

import (
	"fmt"

	"github.com/byterings/gitid/internal/identity"
)

// PrintIdentities prints the configured identities in a formatted way
func PrintIdentities(m *identity.Model) {
	if len(m.Identities) == 0 {
		fmt.Println("No identities configured yet.")
		fmt.Println("\nAdd your first identity with: gitid add")
		return
	}

	fmt.Println("\nConfigured identities:")
	fmt.Println()

	def := m.DefaultIdentity()
	for _, id := range m.Identities {
		indicator := " "
		if def != nil && id.Label == def.Label {
			indicator = "→"
		}

		fmt.Printf("%s %-16s %-28s %s\n",
			indicator,
			id.Label,
			id.Email,
			id.Name,
		)
		for _, host := range id.Hosts {
			fmt.Printf("    host: %s\n", host)
		}
		for _, path := range id.Paths {
			fmt.Printf("    path: %s\n", path)
		}
	}

	fmt.Println()
}

// Success prints a success message with checkmark
func Success(message string) {
	fmt.Printf("✓ %s\n", message)
}

// Error prints an error message
func Error(message string) {
	fmt.Printf("✗ %s\n", message)
}

// Info prints an info message
func Info(message string) {
	fmt.Printf("ℹ %s\n", message)
}

// Warning prints a warning message
func Warning(message string) {
	fmt.Printf("⚠ %s\n", message)
}
