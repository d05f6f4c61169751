package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds user preferences stored in ~/.eartask/preferences.json.
// Never tokens or passwords: the session lives in the database.
type UserConfig struct {
	// Phone pre-filled by "login" when --phone is omitted
	LastPhone string `json:"last_phone,omitempty"`

	// AssumeYes answers every confirmation prompt with yes
	AssumeYes bool `json:"assume_yes,omitempty"`
}

// UserConfigHandler manages loading and saving user preferences
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for the default preferences file
func NewUserConfigHandler() (*UserConfigHandler, error) {
	return NewUserConfigHandlerAt(DataDir())
}

// NewUserConfigHandlerAt creates a handler storing preferences under dir
func NewUserConfigHandlerAt(dir string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(dir, "preferences.json"),
	}, nil
}

// Load reads the preferences; a missing file yields empty preferences
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.configPath)
	if os.IsNotExist(err) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &cfg, nil
}

// Save writes the preferences to disk
func (h *UserConfigHandler) Save(cfg *UserConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetLastPhone remembers the phone of the last successful login
func (h *UserConfigHandler) SetLastPhone(phone string) error {
	return h.update(func(cfg *UserConfig) { cfg.LastPhone = phone })
}

// SetAssumeYes toggles automatic confirmation
func (h *UserConfigHandler) SetAssumeYes(enabled bool) error {
	return h.update(func(cfg *UserConfig) { cfg.AssumeYes = enabled })
}

// Clear removes every preference
func (h *UserConfigHandler) Clear() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the preferences file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}

func (h *UserConfigHandler) update(mutate func(*UserConfig)) error {
	cfg, err := h.Load()
	if err != nil {
		return err
	}
	mutate(cfg)
	return h.Save(cfg)
}
