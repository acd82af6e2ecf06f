package tree

import "github.com/grovetools/jsonedit/value"

// CycleGuard tracks the containers on the current traversal path. Each
// distinct container gets a stable identity token for the lifetime of the
// guard, so a container shared by two branches keeps one token.
//
// A guard belongs to a single Build call and is not safe for concurrent use.
type CycleGuard struct {
	tokens map[any]int
	active map[any]struct{}
	next   int
}

// NewCycleGuard returns an empty guard.
func NewCycleGuard() *CycleGuard {
	return &CycleGuard{
		tokens: make(map[any]int),
		active: make(map[any]struct{}),
		next:   1,
	}
}

// Token returns the identity token of container c, assigning one if needed.
// Scalars have no identity and report 0.
func (g *CycleGuard) Token(c value.Value) int {
	key, ok := identity(c)
	if !ok {
		return 0
	}
	if tok, ok := g.tokens[key]; ok {
		return tok
	}
	tok := g.next
	g.next++
	g.tokens[key] = tok
	return tok
}

// Enter marks c as being on the traversal path. It returns false when c is
// already on the path, i.e. descending into it again would loop.
func (g *CycleGuard) Enter(c value.Value) (int, bool) {
	tok := g.Token(c)
	key, ok := identity(c)
	if !ok {
		return 0, true
	}
	if _, busy := g.active[key]; busy {
		return tok, false
	}
	g.active[key] = struct{}{}
	return tok, true
}

// Leave removes c from the traversal path.
func (g *CycleGuard) Leave(c value.Value) {
	if key, ok := identity(c); ok {
		delete(g.active, key)
	}
}

// identity returns the comparable pointer of a container.
func identity(v value.Value) (any, bool) {
	switch t := v.(type) {
	case *value.Array:
		return t, t != nil
	case *value.Object:
		return t, t != nil
	}
	return nil, false
}
