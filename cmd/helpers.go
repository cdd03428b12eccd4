package cmd

import (
	"fmt"

	"github.com/byterings/gitid/internal/config"
	"github.com/byterings/gitid/internal/identity"
	"github.com/byterings/gitid/internal/ui"
)

// loadModel loads the identities file and reports any parse warnings
func loadModel() (*identity.Model, error) {
	model, warnings, err := config.LoadModel()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		ui.Warning(w)
	}
	return model, nil
}

// saveModel persists the model back to the identities file
func saveModel(model *identity.Model) error {
	if err := config.SaveModel(model); err != nil {
		return fmt.Errorf("failed to save identities: %w", err)
	}
	return nil
}
