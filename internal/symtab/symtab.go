// Package symtab implements the Symbol and scope-stack model.
// Grounded on lang/yparse/symtab.go's SymbolTable (map-
// based global scope, duplicate-definition errors returned as values)
// generalized to a depth-indexed stack of scopes with shadowing to support
// nested blocks and struct-field/call-argument contexts.
package symtab

import (
	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/gmofishsauce/yapc/internal/types"
	"github.com/gmofishsauce/yapc/internal/value"
)

// DeclState is a Symbol's declaration progress.
type DeclState int

const (
	StateNone DeclState = iota
	StateUninitialized
	StateDeclared
	StateDefined
)

func (s DeclState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateDeclared:
		return "declared"
	case StateDefined:
		return "defined"
	default:
		return "none"
	}
}

// Symbol binds an identifier Token to its declaration state, static
// Type, and current Value. ID is a stable, monotonically increasing
// identity assigned once by the owning Stack; DeclaredLine is frozen at
// first insertion.
type Symbol struct {
	ID           int
	Token        token.Token
	State        DeclState
	Type         *types.Type
	Value        value.Value
	DeclaredLine int
}

// Table is a flat, insertion-ordered list of symbols for one scope.
// Lookup is linear, an explicit acceptance of O(n)
// lookup "for the expected symbol counts of this small language."
type Table struct {
	symbols []*Symbol
}

// NewTable returns an empty scope table.
func NewTable() *Table { return &Table{} }

// Add inserts sym, or — if a symbol with a value-equal Token already
// exists in this table — updates it in place, preserving its ID and
// DeclaredLine.
func (t *Table) Add(sym *Symbol) {
	for _, existing := range t.symbols {
		if existing.Token.ValueEqual(sym.Token) {
			id, line := existing.ID, existing.DeclaredLine
			*existing = *sym
			existing.ID, existing.DeclaredLine = id, line
			return
		}
	}
	t.symbols = append(t.symbols, sym)
}

// Retrieve returns the most recently added symbol whose Token is
// value-equal to tok, or (nil, false) on a miss. "Most recent" only
// matters because Add above already collapses same-name entries to one
// slot; Retrieve still scans in order so an intentional future relaxation
// of that collapsing behavior keeps working unchanged.
func (t *Table) Retrieve(tok token.Token) (*Symbol, bool) {
	var found *Symbol
	for _, s := range t.symbols {
		if s.Token.ValueEqual(tok) {
			found = s
		}
	}
	return found, found != nil
}

// Contains reports whether tok resolves to a symbol in this table.
func (t *Table) Contains(tok token.Token) bool {
	_, ok := t.Retrieve(tok)
	return ok
}

// Symbols returns the table's symbols in insertion order.
func (t *Table) Symbols() []*Symbol { return t.symbols }

// Stack is a depth-indexed stack of Tables plus one shadow slot. Depth 0
// is the module scope, kept alive for the whole run. The shadow slot, when set, overrides ordinary
// depth-walking lookup entirely — used by the parser for a function
// declaration's parameter list.
type Stack struct {
	tables []*Table
	shadow *Table
	nextID int
}

// NewStack returns a Stack with one table already pushed at depth 0.
func NewStack() *Stack {
	s := &Stack{nextID: 1}
	s.tables = append(s.tables, NewTable())
	return s
}

// Depth returns the current scope depth; 0 is module scope.
func (s *Stack) Depth() int { return len(s.tables) - 1 }

// Push opens a new scope one level deeper than the current one,
// mirroring a `{` in the source.
func (s *Stack) Push() { s.tables = append(s.tables, NewTable()) }

// Pop closes the innermost scope, mirroring a `}`. Popping the module
// scope (depth 0) is a programming error in this package's caller, not a
// recoverable condition.
func (s *Stack) Pop() {
	if len(s.tables) <= 1 {
		panic("symtab: cannot pop the module scope")
	}
	s.tables = s.tables[:len(s.tables)-1]
}

// Current returns the innermost scope's table.
func (s *Stack) Current() *Table { return s.tables[len(s.tables)-1] }

// Module returns the depth-0 table, valid for the whole run.
func (s *Stack) Module() *Table { return s.tables[0] }

// NextID returns a fresh monotonic symbol ID.
func (s *Stack) NextID() int {
	id := s.nextID
	s.nextID++
	return id
}

// ShadowWith overrides all Lookup/Add calls to target t instead of the
// depth-indexed stack, until ClearShadow is called. The parser uses it
// while reading a function declaration's parameter list; struct bodies
// collect their fields in a separate table, and call-site argument
// lists are parsed without a shadow.
func (s *Stack) ShadowWith(t *Table) { s.shadow = t }

// ClearShadow removes any active shadow table, restoring normal
// depth-indexed lookup.
func (s *Stack) ClearShadow() { s.shadow = nil }

// Shadowed reports whether a shadow table is currently active.
func (s *Stack) Shadowed() bool { return s.shadow != nil }

// Lookup resolves tok against the shadow table if one is active,
// otherwise walks from the current depth down to the module scope,
// returning the first (innermost) match — i.e. shadowing a name in an
// enclosing scope is permitted.
func (s *Stack) Lookup(tok token.Token) (*Symbol, bool) {
	if s.shadow != nil {
		return s.shadow.Retrieve(tok)
	}
	for i := len(s.tables) - 1; i >= 0; i-- {
		if sym, ok := s.tables[i].Retrieve(tok); ok {
			return sym, true
		}
	}
	return nil, false
}

// ExistsInOuterScope reports whether tok resolves to a symbol in any
// scope from the current depth down to (and including) the module
// scope. Used by the parser to distinguish a legal shadowing
// declaration from an illegal same-depth redeclaration: the caller
// checks Current().Contains(tok) for the latter and this method (or
// plain Lookup) for the former.
func (s *Stack) ExistsInOuterScope(tok token.Token) bool {
	_, ok := s.Lookup(tok)
	return ok
}

// Add inserts sym into the shadow table if one is active, otherwise into
// the current (innermost) scope.
func (s *Stack) Add(sym *Symbol) {
	if sym.ID == 0 {
		sym.ID = s.NextID()
	}
	if s.shadow != nil {
		s.shadow.Add(sym)
		return
	}
	s.Current().Add(sym)
}
