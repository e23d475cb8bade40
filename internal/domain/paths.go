package domain

import (
	"os"
	"path/filepath"
)

// AppName is used for config and data directory names.
const AppName = "jira-attach"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// ConfigDir returns the configuration directory under configHome
// (typically $XDG_CONFIG_HOME).
func ConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// DataDir returns the data directory under dataHome
// (typically $XDG_DATA_HOME).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppName)
}

// DefaultConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func DefaultConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// DefaultDataHome returns $XDG_DATA_HOME or ~/.local/share.
func DefaultDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// KeyPath returns the path of the key used to seal saved passwords.
func KeyPath(configDir string) string {
	return filepath.Join(configDir, "key")
}

// HistoryPath returns the path to the change log database.
func HistoryPath(dataDir string) string {
	return filepath.Join(dataDir, "history.db")
}

// DraftsPath returns the path to the drafts file.
func DraftsPath(dataDir string) string {
	return filepath.Join(dataDir, "drafts.json")
}

// StagingDir returns the directory used for upload staging.
func StagingDir(dataDir string) string {
	return filepath.Join(dataDir, "staging")
}

// ViewDir returns the directory where attachments are written for viewing.
func ViewDir(dataDir, issueKey string) string {
	return filepath.Join(dataDir, "attachments", issueKey)
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", AppName+".log")
}

// IssueLogPath returns the path to the log file of one issue.
func IssueLogPath(dataDir, issueKey string) string {
	return filepath.Join(dataDir, "logs", issueKey+".log")
}
