// Package diag implements a closed ErrorCode taxonomy and a
// first-error-wins latch. Grounded on yapl-1/error.go's closed,
// table-driven error-code design, generalized from that toy language's
// handful of codes to the full taxonomy this compiler reports, with the
// latch living on a caller-owned *Latch value (ultimately embedded in
// internal/session.Session) rather than a package-level global.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/sirupsen/logrus"
)

// ErrorCode is the closed taxonomy of user- and internal-facing errors.
type ErrorCode int

const (
	OK ErrorCode = iota
	UNDECLARED
	UNDEFINED
	UNINITIALIZED
	REDECLARED
	UNEXPECTED
	TYPE_DISAGREEMENT
	IMPROPER_DECLARATION
	IMPROPER_ASSIGNMENT
	IMPROPER_ACCESS
	OVERFLOW
	UNDERFLOW
	TOO_MANY
	TOO_FEW
	EMPTY_BODY
	UNREACHABLE_CODE
	LEXER_ERROR
	MISSING_SIZE
	MISSING_SEMICOLON
	MISSING_RETURN
	PEBCAK
	MISC
	UNKNOWN

	// Internal faults: bypass the latch entirely.
	COMPILER
	INTERPRETER
)

var codeNames = map[ErrorCode]string{
	OK: "OK", UNDECLARED: "UNDECLARED", UNDEFINED: "UNDEFINED",
	UNINITIALIZED: "UNINITIALIZED", REDECLARED: "REDECLARED", UNEXPECTED: "UNEXPECTED",
	TYPE_DISAGREEMENT: "TYPE_DISAGREEMENT", IMPROPER_DECLARATION: "IMPROPER_DECLARATION",
	IMPROPER_ASSIGNMENT: "IMPROPER_ASSIGNMENT", IMPROPER_ACCESS: "IMPROPER_ACCESS",
	OVERFLOW: "OVERFLOW", UNDERFLOW: "UNDERFLOW", TOO_MANY: "TOO_MANY", TOO_FEW: "TOO_FEW",
	EMPTY_BODY: "EMPTY_BODY", UNREACHABLE_CODE: "UNREACHABLE_CODE", LEXER_ERROR: "LEXER_ERROR",
	MISSING_SIZE: "MISSING_SIZE", MISSING_SEMICOLON: "MISSING_SEMICOLON",
	MISSING_RETURN: "MISSING_RETURN", PEBCAK: "PEBCAK", MISC: "MISC", UNKNOWN: "UNKNOWN",
	COMPILER: "COMPILER", INTERPRETER: "INTERPRETER",
}

func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsInternal reports whether c is one of the two internal-fault codes
// that bypass the first-error-wins latch.
func (c ErrorCode) IsInternal() bool { return c == COMPILER || c == INTERPRETER }

// Diagnostic is one reported error: a code, a human message, and the
// token whose source position it should be reported against.
type Diagnostic struct {
	Code    ErrorCode
	Message string
	At      token.Token
}

// Latch holds the first non-OK user-level ErrorCode seen during a
// compilation, plus every diagnostic reported (including ones after the
// first, which print but do not move the latch).
type Latch struct {
	code        ErrorCode
	Diagnostics []Diagnostic
}

// NewLatch returns a Latch starting at OK.
func NewLatch() *Latch { return &Latch{code: OK} }

// Code returns the first latched ErrorCode, or OK if nothing has failed.
func (l *Latch) Code() ErrorCode { return l.code }

// Report records a diagnostic. If code is a user-level error and the
// latch is still OK, code becomes the latched value. Internal faults
// (COMPILER/INTERPRETER) are recorded but never touch the latch — the
// caller is expected to follow up with Fatal.
func (l *Latch) Report(code ErrorCode, at token.Token, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.Diagnostics = append(l.Diagnostics, Diagnostic{Code: code, Message: msg, At: at})
	if !code.IsInternal() && l.code == OK && code != OK {
		l.code = code
	}
}

// Reset clears the latch and diagnostic history, used by the REPL
// between input lines so each one starts from OK.
func (l *Latch) Reset() {
	l.code = OK
	l.Diagnostics = nil
}

// Print writes every recorded diagnostic to w in a conventional format:
// file:line, the source line, a caret at the column, then the message.
// source maps a filename to its line-splittable text; lines not found
// there are rendered without the source-line/caret pair.
func Print(w io.Writer, diags []Diagnostic, source map[string][]string) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s:%d:\n", d.At.Filename, d.At.Line)
		lines := source[d.At.Filename]
		if d.At.Line >= 1 && d.At.Line <= len(lines) {
			fmt.Fprintln(w, lines[d.At.Line-1])
			fmt.Fprintln(w, strings.Repeat(" ", max0(d.At.Column-1))+"^")
		}
		fmt.Fprintln(w, d.Message)
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Fatal reports an internal (COMPILER or INTERPRETER) fault and
// terminates the process with a distinct exit code, bypassing the latch
// entirely: a compiler-internal fault exits immediately with a distinct
// exit code rather than being reported as a user diagnostic.
func Fatal(code ErrorCode, format string, args ...interface{}) {
	logrus.Errorf("internal fault (%s): %s", code, fmt.Sprintf(format, args...))
	ExitFunc(exitCodeFor(code))
}

// ExitFunc is the process-exit hook, overridable in tests so Fatal can
// be exercised without killing the test binary.
var ExitFunc = func(code int) { os.Exit(code) }

func exitCodeFor(code ErrorCode) int {
	if code == INTERPRETER {
		return 70 // EX_SOFTWARE, matching yapl-1's ERR_FATAL exit convention
	}
	return 66 // distinct from the interpreter's 70: compiler-internal, not the user's fault
}
