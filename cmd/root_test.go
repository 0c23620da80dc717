package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["extract"])
	assert.True(t, names["migrate"])
}

func TestExtractRequiresInputFlag(t *testing.T) {
	flag := extractCmd.Flags().Lookup("input")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)

	required, ok := flag.Annotations[cobra.BashCompOneRequiredFlag]
	require.True(t, ok)
	assert.Equal(t, []string{"true"}, required)
}
