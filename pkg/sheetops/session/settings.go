package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// settingsFile is the per-user settings document name.
const settingsFile = ".sheetops.json"

// SMTP carries saved mail transport settings. The password is never stored.
type SMTP struct {
	// Addr is the server in host:port form.
	Addr string `json:"smtp"`
	// Sender is the from address.
	Sender string `json:"email"`
	// Save records whether the user opted to keep these settings.
	Save bool `json:"save"`
}

// Settings is the flat key-value document persisted between runs.
type Settings struct {
	LastOpened   string `json:"last_opened,omitempty"`
	LastExported string `json:"last_exported,omitempty"`
	SMTP         *SMTP  `json:"smtp,omitempty"`
	Theme        string `json:"theme,omitempty"`

	path string
}

// DefaultSettingsPath is the fixed per-user settings location.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return settingsFile
	}
	return filepath.Join(home, settingsFile)
}

// LoadSettings reads the settings document at path. A missing or corrupt
// file is silently treated as empty settings.
func LoadSettings(path string) *Settings {
	s := &Settings{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		return &Settings{path: path}
	}
	return s
}

// Store writes the settings document back to its path.
func (s *Settings) Store() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
