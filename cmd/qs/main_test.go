package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.codecgarden.dev/qs/log"
	"go.codecgarden.dev/qs/version"
)

func TestNewRootCmd_VersionFlag(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, version.Version+"\n", out.String())
}

func TestNewRootCmd_NoArgsPrintsHelp(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Decode and encode application/x-www-form-urlencoded query strings")
}

func TestNewRootCmd_HasDecodeAndEncodeSubcommands(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()

	decodeCmd, _, err := cmd.Find([]string{"decode"})
	require.NoError(t, err)
	assert.Equal(t, "decode", decodeCmd.Name())

	encodeCmd, _, err := cmd.Find([]string{"encode"})
	require.NoError(t, err)
	assert.Equal(t, "encode", encodeCmd.Name())
}

func TestNewRootCmd_BadLogLevelFailsPersistentPreRunE(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"decode", "a=1", "--log-level=bogus"})

	err := cmd.Execute()
	require.Error(t, err)
	require.ErrorIs(t, err, log.ErrUnknownLogLevel)
}

func TestNewRootCmd_BadLogFormatFailsPersistentPreRunE(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"decode", "a=1", "--log-format=bogus"})

	err := cmd.Execute()
	require.Error(t, err)
	require.ErrorIs(t, err, log.ErrUnknownLogFormat)
}

func TestSetupLogging_ConfiguresSlogDefault(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()

	cfg := log.NewConfig()
	cfg.Level = "debug"
	cfg.Format = "json"

	err := setupLogging(cmd, cfg)
	require.NoError(t, err)
}

func TestSetupLogging_UnknownLevelErrors(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()

	cfg := log.NewConfig()
	cfg.Level = "bogus"

	err := setupLogging(cmd, cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, log.ErrUnknownLogLevel)
}
