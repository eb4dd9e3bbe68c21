package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.codecgarden.dev/qs/internal/merge"
)

func TestIsUndefined(t *testing.T) {
	t.Parallel()

	assert.True(t, merge.IsUndefined(merge.Undefined))
	assert.False(t, merge.IsUndefined(nil))
	assert.False(t, merge.IsUndefined(""))
	assert.False(t, merge.IsUndefined(0))
	assert.False(t, merge.IsUndefined(merge.NewOrderedMap()))
}
