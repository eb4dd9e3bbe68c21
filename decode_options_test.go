package qs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.codecgarden.dev/qs"
)

func TestNewDecodeOptions_Defaults(t *testing.T) {
	t.Parallel()

	o, err := qs.NewDecodeOptions()
	require.NoError(t, err)

	assert.Equal(t, "&", o.Delimiter)
	assert.Equal(t, 5, o.Depth)
	assert.Equal(t, 20, o.ListLimit)
	assert.Equal(t, 1000, o.ParameterLimit)
	assert.True(t, o.ParseLists)
	assert.Equal(t, qs.DuplicateCombine, o.Duplicates)
}

func TestNewDecodeOptions_DecodeDotInKeys(t *testing.T) {
	t.Parallel()

	t.Run("auto-enables allow dots when not explicitly set", func(t *testing.T) {
		t.Parallel()

		o, err := qs.NewDecodeOptions(qs.WithDecodeDotInKeys(true))
		require.NoError(t, err)
		assert.True(t, o.AllowDots)
	})

	t.Run("accepts explicit allow dots true", func(t *testing.T) {
		t.Parallel()

		o, err := qs.NewDecodeOptions(qs.WithAllowDots(true), qs.WithDecodeDotInKeys(true))
		require.NoError(t, err)
		assert.True(t, o.AllowDots)
	})

	t.Run("rejects explicit allow dots false", func(t *testing.T) {
		t.Parallel()

		_, err := qs.NewDecodeOptions(qs.WithAllowDots(false), qs.WithDecodeDotInKeys(true))
		require.Error(t, err)
		require.ErrorIs(t, err, qs.ErrInvalidOption)
	})
}

func TestDecodeOption_Overrides(t *testing.T) {
	t.Parallel()

	o, err := qs.NewDecodeOptions(
		qs.WithDelimiter(";"),
		qs.WithDepth(2),
		qs.WithListLimit(5),
		qs.WithParameterLimit(10),
		qs.WithParseLists(false),
		qs.WithAllowEmptyLists(true),
		qs.WithCharsetSentinel(true),
		qs.WithInterpretNumericEntities(true),
		qs.WithComma(true),
		qs.WithDuplicates(qs.DuplicateLast),
		qs.WithStrictNullHandling(true),
		qs.WithStrictDepth(true),
		qs.WithRaiseOnLimitExceeded(true),
		qs.WithIgnoreQueryPrefix(true),
	)
	require.NoError(t, err)

	assert.Equal(t, ";", o.Delimiter)
	assert.Equal(t, 2, o.Depth)
	assert.Equal(t, 5, o.ListLimit)
	assert.Equal(t, 10, o.ParameterLimit)
	assert.False(t, o.ParseLists)
	assert.True(t, o.AllowEmptyLists)
	assert.True(t, o.CharsetSentinel)
	assert.True(t, o.InterpretNumericEntities)
	assert.True(t, o.Comma)
	assert.Equal(t, qs.DuplicateLast, o.Duplicates)
	assert.True(t, o.StrictNullHandling)
	assert.True(t, o.StrictDepth)
	assert.True(t, o.RaiseOnLimitExceeded)
	assert.True(t, o.IgnoreQueryPrefix)
}
