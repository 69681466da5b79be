package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnmyco"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnmyco by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gnmyco by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnmyco/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnmyco/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// RulesFilePath returns the path to the curation tables.
// Returns ~/.config/gnmyco/rules.yaml by default.
func RulesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "rules.yaml")
}

// OverridesFilePath returns the default path of hardcoded gene models
// files. Returns ~/.config/gnmyco/hardcoded_gff_files.tsv by default.
func OverridesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "hardcoded_gff_files.tsv")
}

// PreviousFilePath returns the default prior-locations index.
// Returns ~/.config/gnmyco/previously_downloaded_files.tsv by default.
func PreviousFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "previously_downloaded_files.tsv")
}

// TaxonomyDBPath returns the path of the local NCBI taxonomy database.
// Returns ~/.cache/gnmyco/taxonomy.sqlite by default.
func TaxonomyDBPath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "taxonomy.sqlite")
}

// TaxdumpPath returns the path of the downloaded NCBI taxonomy dump.
// Returns ~/.cache/gnmyco/taxdump.tar.gz by default.
func TaxdumpPath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "taxdump.tar.gz")
}

// CredentialsFilePath returns the default JGI credentials file.
// Returns ~/.config/gnmyco/credentials.txt by default.
func CredentialsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "credentials.txt")
}
