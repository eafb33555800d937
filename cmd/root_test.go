package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cgrep-dev/cgrep/grep"
)

func TestRootCommandWiring(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"init", "search", "replace", "strings", "comments", "review", "watch"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
	assert.True(t, rootCmd.TraverseChildren)
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, newLogger(false))
	assert.NotNil(t, newLogger(true))
}

func TestInitCommandWritesConfig(t *testing.T) {
	dir := t.TempDir()
	old := cfgFile
	cfgFile = filepath.Join(dir, ".cgrep.yaml")
	defer func() { cfgFile = old }()

	logger = zap.NewNop()
	initCmd.Run(initCmd, nil)

	content, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "name: cgrep")

	config, err := grep.LoadConfig(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, grep.DefaultConfig(), config)
}
