package qs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.codecgarden.dev/qs"
	"go.codecgarden.dev/qs/internal/percent"
	"go.codecgarden.dev/qs/internal/qstest"
)

func getPath(t *testing.T, m *qs.OrderedMap, path ...string) any {
	t.Helper()

	var cur any = m

	for _, p := range path {
		om, ok := cur.(*qs.OrderedMap)
		require.True(t, ok, "expected *OrderedMap at %q, got %T", p, cur)

		v, ok := om.Get(p)
		require.True(t, ok, "missing key %q", p)

		cur = v
	}

	return cur
}

func TestDecode_FlatPairs(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode(qstest.JoinAmp("a=1", "b=2"))
	require.NoError(t, err)

	assert.Equal(t, "1", getPath(t, got, "a"))
	assert.Equal(t, "2", getPath(t, got, "b"))
}

func TestDecode_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestDecode_BracketNesting(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a[b][c]=d")
	require.NoError(t, err)

	assert.Equal(t, "d", getPath(t, got, "a", "b", "c"))
}

func TestDecode_DotNotation(t *testing.T) {
	t.Parallel()

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode("a.b=c")
		require.NoError(t, err)
		assert.Equal(t, "c", getPath(t, got, "a.b"))
	})

	t.Run("enabled via WithAllowDots", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode("a.b=c", qs.WithAllowDots(true))
		require.NoError(t, err)
		assert.Equal(t, "c", getPath(t, got, "a", "b"))
	})
}

func TestDecode_IndexedArrays(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a[0]=x&a[1]=y")
	require.NoError(t, err)

	v := getPath(t, got, "a")
	seq, ok := v.([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"x", "y"}, seq)
}

func TestDecode_EmptyBracketBuildsSequence(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a[]=x&a[]=y")
	require.NoError(t, err)

	v := getPath(t, got, "a")
	seq, ok := v.([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"x", "y"}, seq)
}

func TestDecode_EmptyBracketWithoutParseListsBuildsMapping(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a[]=x", qs.WithParseLists(false))
	require.NoError(t, err)

	v := getPath(t, got, "a")
	m, ok := v.(*qs.OrderedMap)
	require.True(t, ok)

	inner, ok := m.Get("[]")
	require.True(t, ok)
	assert.Equal(t, "x", inner)
}

func TestDecode_SparseIndexBecomesSequenceWithHolesCompacted(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a[5]=z")
	require.NoError(t, err)

	v := getPath(t, got, "a")
	seq, ok := v.([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"z"}, seq)
}

func TestDecode_IndexBeyondListLimitBecomesMapping(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a[50]=z", qs.WithListLimit(20))
	require.NoError(t, err)

	v := getPath(t, got, "a")
	m, ok := v.(*qs.OrderedMap)
	require.True(t, ok)

	inner, ok := m.Get("50")
	require.True(t, ok)
	assert.Equal(t, "z", inner)
}

func TestDecode_RepeatedKeysCombineByDefault(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode(qstest.JoinAmp("a=1", "a=2"))
	require.NoError(t, err)

	v := getPath(t, got, "a")
	assert.Equal(t, []any{"1", "2"}, v)
}

func TestDecode_DuplicatesPolicy(t *testing.T) {
	t.Parallel()

	t.Run("first keeps the earliest value", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode(qstest.JoinAmp("a=1", "a=2"), qs.WithDuplicates(qs.DuplicateFirst))
		require.NoError(t, err)
		assert.Equal(t, "1", getPath(t, got, "a"))
	})

	t.Run("last keeps the latest value", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode(qstest.JoinAmp("a=1", "a=2"), qs.WithDuplicates(qs.DuplicateLast))
		require.NoError(t, err)
		assert.Equal(t, "2", getPath(t, got, "a"))
	})
}

func TestDecode_PercentDecoding(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a=b%20c")
	require.NoError(t, err)
	assert.Equal(t, "b c", getPath(t, got, "a"))
}

func TestDecode_PlusDecodesToSpace(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a=b+c")
	require.NoError(t, err)
	assert.Equal(t, "b c", getPath(t, got, "a"))
}

func TestDecode_NoEqualsSign(t *testing.T) {
	t.Parallel()

	t.Run("default decodes to empty string", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode("a")
		require.NoError(t, err)
		assert.Equal(t, "", getPath(t, got, "a"))
	})

	t.Run("strict null handling decodes to nil", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode("a", qs.WithStrictNullHandling(true))
		require.NoError(t, err)
		assert.Nil(t, getPath(t, got, "a"))
	})
}

func TestDecode_IgnoreQueryPrefix(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("?a=1", qs.WithIgnoreQueryPrefix(true))
	require.NoError(t, err)
	assert.Equal(t, "1", getPath(t, got, "a"))
}

func TestDecode_CustomDelimiter(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode(qstest.JoinPairs(";", "a=1", "b=2"), qs.WithDelimiter(";"))
	require.NoError(t, err)
	assert.Equal(t, "1", getPath(t, got, "a"))
	assert.Equal(t, "2", getPath(t, got, "b"))
}

func TestDecode_Comma(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a=x,y,z", qs.WithComma(true))
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y", "z"}, getPath(t, got, "a"))
}

func TestDecode_ParameterLimit(t *testing.T) {
	t.Parallel()

	t.Run("truncates silently by default", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode(qstest.JoinAmp("a=1", "b=2", "c=3"), qs.WithParameterLimit(2))
		require.NoError(t, err)
		assert.Equal(t, "1", getPath(t, got, "a"))
		assert.Equal(t, "2", getPath(t, got, "b"))

		_, ok := got.Get("c")
		assert.False(t, ok)
	})

	t.Run("raises when RaiseOnLimitExceeded is set", func(t *testing.T) {
		t.Parallel()

		_, err := qs.Decode(qstest.JoinAmp("a=1", "b=2", "c=3"), qs.WithParameterLimit(2), qs.WithRaiseOnLimitExceeded(true))
		require.Error(t, err)
		require.ErrorIs(t, err, qs.ErrParameterLimitExceeded)
	})
}

func TestDecode_DepthLimit(t *testing.T) {
	t.Parallel()

	t.Run("collapses overflow into a literal key by default", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode("a[b][c][d]=1", qs.WithDepth(1))
		require.NoError(t, err)

		v := getPath(t, got, "a", "b")
		m, ok := v.(*qs.OrderedMap)
		require.True(t, ok)

		inner, ok := m.Get("[c][d]")
		require.True(t, ok)
		assert.Equal(t, "1", inner)
	})

	t.Run("raises with strict depth", func(t *testing.T) {
		t.Parallel()

		_, err := qs.Decode("a[b][c][d]=1", qs.WithDepth(1), qs.WithStrictDepth(true))
		require.Error(t, err)
		require.ErrorIs(t, err, qs.ErrDepthExceeded)
	})
}

func TestDecode_CharsetSentinel(t *testing.T) {
	t.Parallel()

	t.Run("utf8 sentinel is removed and does not produce a key", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode("utf8=%E2%9C%93&a=1", qs.WithCharsetSentinel(true))
		require.NoError(t, err)

		_, ok := got.Get("utf8")
		assert.False(t, ok)
		assert.Equal(t, "1", getPath(t, got, "a"))
	})

	t.Run("latin1 sentinel switches charset for subsequent decoding", func(t *testing.T) {
		t.Parallel()

		got, err := qs.Decode("utf8=%26%2310003%3B&a=%E9", qs.WithCharsetSentinel(true))
		require.NoError(t, err)
		assert.Equal(t, "é", getPath(t, got, "a"))
	})
}

func TestDecode_InterpretNumericEntities(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a=%26%239731%3B", qs.WithInterpretNumericEntities(true))
	require.NoError(t, err)
	assert.Equal(t, "☃", getPath(t, got, "a"))
}

func TestDecode_DecodeDotInKeys(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a%2Eb[c]=d", qs.WithDecodeDotInKeys(true))
	require.NoError(t, err)

	assert.Equal(t, "d", getPath(t, got, "a.b", "c"))
}

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	input := map[string][]string{
		"a[b]": {"1"},
		"a[c]": {"2"},
		"d":    {"3", "4"},
	}

	got, err := qs.DecodeMap(input)
	require.NoError(t, err)

	assert.Equal(t, "1", getPath(t, got, "a", "b"))
	assert.Equal(t, "2", getPath(t, got, "a", "c"))

	dv := getPath(t, got, "d")
	seq, ok := dv.([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"3", "4"}, seq)
}

func TestDecodeMap_NoValuesDecodesEmptyString(t *testing.T) {
	t.Parallel()

	input := map[string][]string{"a": {}}

	got, err := qs.DecodeMap(input)
	require.NoError(t, err)
	assert.Equal(t, "", getPath(t, got, "a"))
}

func TestDecode_CustomDecoder(t *testing.T) {
	t.Parallel()

	var kinds []qs.DecodeKind

	got, err := qs.Decode("a=1", qs.WithDecoder(func(s string, charset percent.Charset, kind qs.DecodeKind) (string, error) {
		kinds = append(kinds, kind)

		return s, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, "1", getPath(t, got, "a"))
	assert.Contains(t, kinds, qs.DecodeKindKey)
	assert.Contains(t, kinds, qs.DecodeKindValue)
}

func TestDecode_LegacyDecoder(t *testing.T) {
	t.Parallel()

	got, err := qs.Decode("a=1", qs.WithLegacyDecoder(func(s string, charset percent.Charset) (string, error) {
		return "legacy-" + s, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, "legacy-1", getPath(t, got, "legacy-a"))
}
