package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.codecgarden.dev/qs/internal/identity"
)

func TestSet_EnterLeave(t *testing.T) {
	t.Parallel()

	t.Run("scalars are never cyclic", func(t *testing.T) {
		t.Parallel()

		s := identity.NewSet()

		assert.False(t, s.Enter("a string"))
		assert.False(t, s.Enter(42))
		assert.False(t, s.Enter(nil))
		assert.False(t, s.Enter(true))
	})

	t.Run("map entered twice reports a cycle", func(t *testing.T) {
		t.Parallel()

		s := identity.NewSet()
		m := map[string]any{"a": 1}

		assert.False(t, s.Enter(m))
		assert.True(t, s.Enter(m))
	})

	t.Run("leave forgets a container so sibling visits are not cyclic", func(t *testing.T) {
		t.Parallel()

		s := identity.NewSet()
		slice := []any{1, 2, 3}

		assert.False(t, s.Enter(slice))
		s.Leave(slice)

		assert.False(t, s.Enter(slice))
	})

	t.Run("two distinct maps do not collide", func(t *testing.T) {
		t.Parallel()

		s := identity.NewSet()
		a := map[string]any{"x": 1}
		b := map[string]any{"y": 2}

		assert.False(t, s.Enter(a))
		assert.False(t, s.Enter(b))
	})

	t.Run("nil map or slice is never cyclic", func(t *testing.T) {
		t.Parallel()

		s := identity.NewSet()

		var nilMap map[string]any

		var nilSlice []any

		assert.False(t, s.Enter(nilMap))
		assert.False(t, s.Enter(nilMap))
		assert.False(t, s.Enter(nilSlice))
		assert.False(t, s.Enter(nilSlice))
	})

	t.Run("pointer cycle detected", func(t *testing.T) {
		t.Parallel()

		type node struct {
			next *node
		}

		n := &node{}
		n.next = n

		s := identity.NewSet()

		assert.False(t, s.Enter(n))
		assert.True(t, s.Enter(n))
		s.Leave(n)
		s.Leave(n)
	})

	t.Run("re-entry reports a cycle until every enter has been left", func(t *testing.T) {
		t.Parallel()

		s := identity.NewSet()
		m := map[string]any{"a": 1}

		assert.False(t, s.Enter(m))
		assert.True(t, s.Enter(m))
		s.Leave(m)
		assert.True(t, s.Enter(m))
		s.Leave(m)
		s.Leave(m)
		assert.False(t, s.Enter(m))
	})
}
