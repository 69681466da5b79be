// Package iofs prepares the gnmyco directories and the user copies of
// config.yaml and rules.yaml.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnmyco/pkg/config"
	"github.com/gnames/gnmyco/pkg/rules"
	"github.com/gnames/gnsys"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml if it does not exist.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), []byte(ConfigYAML))
}

// EnsureRulesFile writes the default rules.yaml if it does not exist.
func EnsureRulesFile(homeDir string) error {
	return ensureFile(config.RulesFilePath(homeDir), rules.DefaultYAML)
}

func ensureFile(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return WriteFileError(path, err)
	}

	return nil
}

// LoadRules reads the user copy of rules.yaml. If the copy is absent the
// embedded defaults are used.
func LoadRules(homeDir string) (*rules.Rules, error) {
	path := config.RulesFilePath(homeDir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return rules.Default(), nil
	}
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	res, err := rules.Parse(data)
	if err != nil {
		return nil, RulesError(path, err)
	}
	return res, nil
}
