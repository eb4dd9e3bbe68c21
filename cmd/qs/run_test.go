package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.codecgarden.dev/qs/profile"
)

func TestRunDecode_WritesIndentedJSON(t *testing.T) {
	t.Parallel()

	cmd := newDecodeCmd(profile.NewConfig())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"a[b]=c"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"a\": {\n    \"b\": \"c\"\n  }\n}\n", out.String())
}

func TestRunDecode_ReadsFromStdin(t *testing.T) {
	t.Parallel()

	cmd := newDecodeCmd(profile.NewConfig())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("a=1"))
	cmd.SetArgs([]string{"-"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"a\": \"1\"\n}\n", out.String())
}

func TestRunDecode_InvalidInputErrors(t *testing.T) {
	t.Parallel()

	cmd := newDecodeCmd(profile.NewConfig())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"a[b][c][d]=1", "--depth=1", "--strict-depth=true"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestRunEncode_WritesQueryString(t *testing.T) {
	t.Parallel()

	cmd := newEncodeCmd(profile.NewConfig())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{`{"a": {"b": "c"}}`})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, "a%5Bb%5D=c\n", out.String())
}

func TestRunEncode_ReadsFromStdin(t *testing.T) {
	t.Parallel()

	cmd := newEncodeCmd(profile.NewConfig())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(`{"a": "1"}`))
	cmd.SetArgs([]string{"-"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, "a=1\n", out.String())
}

func TestRunEncode_InvalidListFormatErrors(t *testing.T) {
	t.Parallel()

	cmd := newEncodeCmd(profile.NewConfig())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{`{"a": "1"}`, "--list-format=bogus"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestRunEncode_InvalidJSONErrors(t *testing.T) {
	t.Parallel()

	cmd := newEncodeCmd(profile.NewConfig())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{`{not valid`})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestReadArg_LiteralAndStdin(t *testing.T) {
	t.Parallel()

	cmd := newDecodeCmd(profile.NewConfig())
	cmd.SetIn(strings.NewReader("from-stdin"))

	got, err := readArg(cmd, "literal")
	require.NoError(t, err)
	assert.Equal(t, "literal", got)

	got, err = readArg(cmd, "-")
	require.NoError(t, err)
	assert.Equal(t, "from-stdin", got)
}
