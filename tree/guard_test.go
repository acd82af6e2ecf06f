package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grovetools/jsonedit/value"
)

func TestCycleGuard(t *testing.T) {
	g := NewCycleGuard()
	a := value.NewArray()
	o := value.NewObject()

	ta, ok := g.Enter(a)
	assert.True(t, ok)
	_, ok = g.Enter(a)
	assert.False(t, ok, "re-entering an active container is a cycle")

	to, ok := g.Enter(o)
	assert.True(t, ok)
	assert.NotEqual(t, ta, to)

	g.Leave(a)
	again, ok := g.Enter(a)
	assert.True(t, ok)
	assert.Equal(t, ta, again, "tokens are stable")

	assert.Equal(t, 0, g.Token("scalar"))
}
