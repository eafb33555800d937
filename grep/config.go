package grep

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is consulted when no --config flag is given.
const DefaultConfigPath = ".cgrep.yaml"

// Config is the run configuration read from a .cgrep.yaml file.
type Config struct {
	Name       string   `yaml:"name"`
	Editor     string   `yaml:"editor"`
	Extensions []string `yaml:"extensions"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Name:       "cgrep",
		Extensions: []string{".c", ".h"},
	}
}

// LoadConfig reads the configuration file at path. An empty path falls back
// to DefaultConfigPath, and a missing default file is not an error; a
// missing explicit file is. Omitted fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("reading config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if config.Name == "" {
		config.Name = "cgrep"
	}
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultConfig().Extensions
	}
	return config, nil
}

// EditorCommand resolves the editor for review sessions: the config file
// first, then $EDITOR, then emacs.
func (c Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "emacs"
}

// WriteConfigFile writes c to path, for the init command.
func WriteConfigFile(path string, c Config) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return err
	}
	return nil
}
