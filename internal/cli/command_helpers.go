package cli

import (
	"fmt"

	"github.com/pluqqy/inledit/pkg/models"
	"github.com/pluqqy/inledit/pkg/store"
)

// CommandContext manages project validation and common command context
type CommandContext struct {
	ProjectPath string
	Store       *store.Store
	Settings    *models.Settings
	validated   bool
}

// NewCommandContext creates a command context for the configured project dir
func NewCommandContext() *CommandContext {
	return &CommandContext{
		ProjectPath: projectDir,
		Store:       store.Open(projectDir),
	}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if !c.Store.Exists() {
		return fmt.Errorf("no %s directory found. Run 'inledit init' first", c.ProjectPath)
	}

	c.validated = true
	return nil
}

// LoadSettings reads settings.yaml and applies the commit rules to the store
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := c.Store.ReadSettings()
	if err != nil {
		return nil, err
	}
	if err := c.Store.SetRejectPattern(settings.Commit.RejectPattern); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	c.Settings = settings
	return settings, nil
}

// FindField returns the definition for key
func (c *CommandContext) FindField(key string) (models.FieldDef, error) {
	fields, err := c.Store.ReadFields()
	if err != nil {
		return models.FieldDef{}, err
	}
	def, ok := fields.Find(key)
	if !ok {
		return models.FieldDef{}, fmt.Errorf("%w: %s (run 'inledit list' to see available fields)", store.ErrUnknownField, key)
	}
	return def, nil
}
