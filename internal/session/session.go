// Package session owns the state that is threaded explicitly through
// every phase of one compilation, replacing the package-level globals
// yapl-1 uses (lineCount, symtab, strtab, and the error cell) with a
// single constructor-injected value threaded explicitly through the parser,
// checker, and interpreter rather than kept as a package-level global.
package session

import (
	"strings"

	"github.com/gmofishsauce/yapc/internal/ast"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/symtab"
)

// Session is the one long-lived, mutable value shared (by explicit
// parameter, never by package global) across the lexer, parser,
// checker, and interpreter for a single source file.
type Session struct {
	Filename string
	Source   string
	lines    []string

	// Latch is the first-error-wins diagnostic accumulator.
	Latch *diag.Latch

	// Module is an empty table created with the session and replaced by
	// Reset. The parser, checker, and interpreter do not use it: they
	// share the depth-0 table of the *symtab.Stack passed to them.
	Module *symtab.Table

	// Functions is the registry of function declarations populated by a
	// pre-pass before interpretation begins, run explicitly rather than as a
	// side effect of a single combined walk.
	Functions map[string]*ast.FuncDecl

	Verbose bool
}

// New returns a fresh Session for compiling source from filename.
func New(filename, source string) *Session {
	return &Session{
		Filename:  filename,
		Source:    source,
		lines:     strings.Split(source, "\n"),
		Latch:     diag.NewLatch(),
		Module:    symtab.NewTable(),
		Functions: make(map[string]*ast.FuncDecl),
	}
}

// Reset clears per-run diagnostic and declaration state while keeping
// the session's identity (verbosity). The REPL never calls this
// between inputs: it keeps Functions across lines on purpose, so
// declarations accumulate. internal/testharness does not call it
// either; it builds a fresh Session for each fixture.
func (s *Session) Reset(filename, source string) {
	s.Filename = filename
	s.Source = source
	s.lines = strings.Split(source, "\n")
	s.Latch.Reset()
	s.Module = symtab.NewTable()
	s.Functions = make(map[string]*ast.FuncDecl)
}

// SourceLines returns the file content split into lines, keyed by
// filename for diag.Print's line lookup.
func (s *Session) SourceLines() map[string][]string {
	return map[string][]string{s.Filename: s.lines}
}
