//go:build !integration

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"show", "options", "render", "export", "theme", "shell", "import"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "evdash", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestSelectionFlags(t *testing.T) {
	for _, c := range []string{"show", "options", "render", "export"} {
		cmd, _, err := rootCmd.Find([]string{c})
		require.NoError(t, err)
		for _, name := range []string{"county", "city", "make", "model"} {
			assert.NotNil(t, cmd.Flags().Lookup(name), "%s should have --%s", c, name)
		}
	}
}

func TestCommandFlags(t *testing.T) {
	flag := showCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "table", flag.DefValue)

	flag = exportCmd.Flags().Lookup("out")
	require.NotNil(t, flag)
	assert.Equal(t, "ev-dashboard.xlsx", flag.DefValue)

	assert.NotNil(t, renderCmd.Flags().Lookup("out-dir"))
	assert.NotNil(t, renderCmd.Flags().Lookup("format"))
	assert.NotNil(t, importCmd.Flags().Lookup("from"))
	assert.NotNil(t, importCmd.Flags().Lookup("table"))
}
