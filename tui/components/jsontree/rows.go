package jsontree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/editor"
	"github.com/grovetools/jsonedit/tree"
	"github.com/grovetools/jsonedit/tui/theme"
	"github.com/grovetools/jsonedit/value"
)

// nodeView is the display data the build hooks attach to every node.
type nodeView struct {
	text string
	kind value.Kind
}

// describeNode is the node hook.
func describeNode(n *tree.Node, v value.Value, _ *cursor.Cursor, _ *tree.ParentLink) {
	nv := &nodeView{kind: value.KindOf(v)}
	switch n.Kind {
	case tree.KindLeaf:
		nv.text = editor.FormatLiteral(v)
		if nv.kind == value.String {
			nv.text = strconv.Quote(v.(string))
		}
	case tree.KindSentinel:
		nv.text = tree.SentinelText
	case tree.KindArray:
		nv.text = fmt.Sprintf("[%d]", n.Len())
	case tree.KindObject:
		nv.text = fmt.Sprintf("{%d}", n.Len())
	}
	n.Data = nv
}

// describeKey is the key hook.
func describeKey(n *tree.Node, v value.Value, _ *cursor.Cursor, _ *tree.ParentLink) {
	n.Data = &nodeView{text: v.(string), kind: value.String}
}

func viewOf(n *tree.Node) *nodeView {
	if nv, ok := n.Data.(*nodeView); ok {
		return nv
	}
	return &nodeView{}
}

// row is one visible line of the tree.
type row struct {
	node  *tree.Node
	key   *tree.Node // key node for object entries
	label string
}

// path is the stable identity of a row across rebuilds.
func (r row) path() string { return r.node.Path() }

// flatten lists the visible rows below root, honoring folds.
func (m *Model) flatten(root *tree.Node) []row {
	if root == nil {
		return nil
	}
	var rows []row
	var walk func(r row)
	walk = func(r row) {
		rows = append(rows, r)
		n := r.node
		if !n.IsContainer() || m.isCollapsed(n) {
			return
		}
		for i, c := range n.Children {
			walk(row{node: c, label: strconv.Itoa(i)})
		}
		for _, p := range n.Pairs {
			walk(row{node: p.Value, key: p.Key, label: viewOf(p.Key).text})
		}
	}
	walk(row{node: root})
	return rows
}

// isCollapsed reports whether container n is folded. Explicit folds win;
// otherwise containers deeper than the expand depth start folded.
func (m *Model) isCollapsed(n *tree.Node) bool {
	if !n.IsContainer() {
		return false
	}
	if folded, ok := m.folds[n.Path()]; ok {
		return folded
	}
	return n.Depth >= m.expandDepth
}

func (m *Model) setFold(n *tree.Node, folded bool) {
	if n != nil && n.IsContainer() {
		m.folds[n.Path()] = folded
	}
}

// setAllFolds folds or unfolds every container below the root.
func (m *Model) setAllFolds(folded bool) {
	root := m.session.Tree()
	if root == nil {
		return
	}
	root.Walk(func(n *tree.Node) bool {
		if n.IsContainer() && n != root {
			m.folds[n.Path()] = folded
		}
		return true
	})
}

// reveal unfolds every ancestor of n.
func (m *Model) reveal(n *tree.Node) {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Cursor != nil {
			m.folds[p.Cursor.Path()] = false
		}
	}
}

// matches returns the paths of all nodes whose label or leaf text contains
// query, case-insensitively, in document order.
func matches(root *tree.Node, query string) []string {
	query = strings.ToLower(query)
	if root == nil || query == "" {
		return nil
	}
	var paths, labels []string
	root.Walk(func(n *tree.Node) bool {
		hit := strings.Contains(strings.ToLower(n.Label()), query)
		if !hit && n.Kind == tree.KindLeaf {
			hit = strings.Contains(strings.ToLower(viewOf(n).text), query)
		}
		if hit {
			paths = append(paths, n.Path())
		}
		labels = append(labels, n.Path())
		return true
	})
	if len(paths) > 0 {
		return paths
	}
	return fuzzyMatches(labels, query)
}

// fuzzyMatches is the fallback when no key or value contains query: paths
// whose characters include query in order, kept in document order.
func fuzzyMatches(paths []string, query string) []string {
	found := fuzzy.Find(query, paths)
	idx := make([]int, 0, len(found))
	for _, f := range found {
		idx = append(idx, f.Index)
	}
	sort.Ints(idx)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = paths[j]
	}
	return out
}

// renderRow renders a single row.
func (m *Model) renderRow(r row, selected, hit bool) string {
	t := theme.DefaultTheme
	n := r.node
	nv := viewOf(n)

	var b strings.Builder
	b.WriteString(strings.Repeat("  ", n.Depth))

	switch {
	case n.IsContainer() && m.isCollapsed(n):
		b.WriteString(t.Muted.Render(theme.IconCollapsed) + " ")
	case n.IsContainer():
		b.WriteString(t.Muted.Render(theme.IconExpanded) + " ")
	default:
		b.WriteString("  ")
	}

	if r.label != "" {
		labelStyle := t.Index
		if r.key != nil {
			labelStyle = t.Key
		}
		b.WriteString(m.highlight(r.label, labelStyle, hit))
		b.WriteString(t.Muted.Render(": "))
	}

	switch n.Kind {
	case tree.KindSentinel:
		b.WriteString(t.Visited.Render(theme.IconVisited + " " + nv.text))
	case tree.KindArray, tree.KindObject:
		text := nv.text
		if m.isCollapsed(n) {
			text += " …"
		}
		b.WriteString(t.Bracket.Render(text))
	default:
		b.WriteString(m.highlight(nv.text, leafStyle(t, nv.kind), hit))
	}

	line := b.String()
	if selected {
		line = t.Selected.Render(line)
	}
	return line
}

func leafStyle(t *theme.Theme, k value.Kind) lipgloss.Style {
	switch k {
	case value.String:
		return t.String
	case value.Number:
		return t.Number
	case value.Boolean:
		return t.Boolean
	default:
		return t.Null
	}
}

// highlight renders text in base, marking occurrences of the active query
// when the row is a search hit.
func (m *Model) highlight(text string, base lipgloss.Style, hit bool) string {
	if !hit || m.query == "" {
		return base.Render(text)
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(m.query)
	if len(lowerText) != len(text) || len(lowerQuery) != len(m.query) {
		// Case folding changed byte offsets.
		return base.Render(text)
	}
	match := theme.DefaultTheme.Match

	var out strings.Builder
	start := 0
	for {
		idx := strings.Index(lowerText[start:], lowerQuery)
		if idx == -1 {
			out.WriteString(base.Render(text[start:]))
			break
		}
		at := start + idx
		out.WriteString(base.Render(text[start:at]))
		out.WriteString(match.Render(text[at : at+len(m.query)]))
		start = at + len(m.query)
	}
	return out.String()
}
