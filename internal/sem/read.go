package sem

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/unicode/norm"
)

// Read decodes a semantic-model document. Identifier-like text is
// NFC-normalized on the way in so downstream comparisons see one
// spelling per name.
func Read(r io.Reader) (*Model, error) {
	var m Model
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing semantic document: %w", err)
	}
	normalize(&m)
	return &m, nil
}

func normalize(m *Model) {
	for i := range m.Symbols {
		m.Symbols[i].Name = norm.NFC.String(m.Symbols[i].Name)
	}
	for i := range m.Syntax.Nodes {
		n := &m.Syntax.Nodes[i]
		n.CalleeName = norm.NFC.String(n.CalleeName)
		n.Text = norm.NFC.String(n.Text)
	}
	for i := range m.Techniques {
		m.Techniques[i].Name = norm.NFC.String(m.Techniques[i].Name)
	}
}

// Index is a resolved view over a model: O(1) node, symbol and type
// lookups.
type Index struct {
	Model   *Model
	nodes   map[int32]*Node
	symbols map[int32]*Symbol
	types   map[int32]string
}

// NewIndex builds lookup tables for a model.
func NewIndex(m *Model) *Index {
	idx := &Index{
		Model:   m,
		nodes:   make(map[int32]*Node, len(m.Syntax.Nodes)),
		symbols: make(map[int32]*Symbol, len(m.Symbols)),
		types:   make(map[int32]string, len(m.Types)),
	}
	for i := range m.Syntax.Nodes {
		n := &m.Syntax.Nodes[i]
		idx.nodes[n.ID] = n
	}
	for i := range m.Symbols {
		s := &m.Symbols[i]
		idx.symbols[s.ID] = s
	}
	for _, tb := range m.Types {
		idx.types[tb.NodeID] = tb.Type
	}
	return idx
}

// Node looks up a syntax node by id.
func (idx *Index) Node(id int32) *Node {
	return idx.nodes[id]
}

// Symbol looks up a symbol by id.
func (idx *Index) Symbol(id int32) *Symbol {
	return idx.symbols[id]
}

// NodeType returns the resolved type of an expression node, or
// "unknown" when the binding table has no entry.
func (idx *Index) NodeType(id int32) string {
	if t, ok := idx.types[id]; ok && t != "" {
		return t
	}
	return "unknown"
}

// Child returns the first child of a node with the given role.
func (n *Node) Child(role string) (int32, bool) {
	for _, c := range n.Children {
		if c.Role == role {
			return c.NodeID, true
		}
	}
	return 0, false
}

// ChildrenWithRole collects all children with the given role, in order.
func (n *Node) ChildrenWithRole(role string) []int32 {
	var out []int32
	for _, c := range n.Children {
		if c.Role == role {
			out = append(out, c.NodeID)
		}
	}
	return out
}

// FormatSemantic renders a symbol's binding semantic in concatenated
// form (POSITION + 0 → POSITION0).
func (s *Symbol) FormatSemantic() string {
	if s == nil || s.Semantic == nil || s.Semantic.Name == "" {
		return ""
	}
	if s.Semantic.Index == nil {
		return s.Semantic.Name
	}
	return fmt.Sprintf("%s%d", s.Semantic.Name, *s.Semantic.Index)
}
