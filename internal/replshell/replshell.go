// Package replshell implements the interactive top-level loop: each
// line (or brace-balanced multi-line block) the user types is lexed,
// parsed, checked, and interpreted against one persistent session and
// scope, so declarations and variable state from earlier input remain
// visible to later input.
//
// Grounded on lang/ya/main.go's read-dispatch-print loop shape,
// generalized from that tool's single-pass batch invocation to an
// interactive prompt, and built on github.com/peterh/liner for
// line editing and history the way other_examples precedent
// (ozanh/ugo) wires liner into a Go-hosted interpreter's REPL.
package replshell

import (
	"io"
	"strings"

	"github.com/gmofishsauce/yapc/internal/checker"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/interp"
	"github.com/gmofishsauce/yapc/internal/lexer"
	"github.com/gmofishsauce/yapc/internal/parser"
	"github.com/gmofishsauce/yapc/internal/session"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/peterh/liner"
)

const prompt = "yapc> "

// Shell owns the one persistent Session/Stack pair the loop's
// statements accumulate declarations into.
type Shell struct {
	sess  *session.Session
	scope *symtab.Stack
	out   io.Writer
	line  *liner.State
}

// New returns a Shell writing interpreted output to out.
func New(out io.Writer) *Shell {
	return &Shell{
		sess:  session.New("<repl>", ""),
		scope: symtab.NewStack(),
		out:   out,
		line:  liner.NewLiner(),
	}
}

// Close releases the underlying terminal state.
func (s *Shell) Close() error { return s.line.Close() }

// Run reads input until EOF (Ctrl-D) or an explicit "quit" line.
func (s *Shell) Run() {
	defer s.Close()
	s.line.SetCtrlCAborts(true)
	for {
		text, err := s.readStatement()
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			return
		}
		s.line.AppendHistory(text)
		s.evalLine(text)
	}
}

// readStatement reads lines until braces balance, so a multi-line
// function or block can be entered at the prompt.
func (s *Shell) readStatement() (string, error) {
	first, err := s.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(first)
	depth := strings.Count(first, "{") - strings.Count(first, "}")
	for depth > 0 {
		next, err := s.line.Prompt("...    ")
		if err != nil {
			break
		}
		sb.WriteByte('\n')
		sb.WriteString(next)
		depth += strings.Count(next, "{") - strings.Count(next, "}")
	}
	return sb.String(), nil
}

// evalLine runs one statement or declaration against the shell's
// persistent session, printing any diagnostics that were latched.
func (s *Shell) evalLine(text string) {
	s.sess.Latch.Reset()
	lx := lexer.New("<repl>", text)
	p := parser.New(lx, s.sess, s.scope)
	prog := p.Parse()

	if s.sess.Latch.Code() == diag.OK {
		chk := checker.New(s.sess, s.scope)
		chk.Check(prog)
	}

	if s.sess.Latch.Code() != diag.OK {
		diag.Print(s.out, s.sess.Latch.Diagnostics, map[string][]string{"<repl>": strings.Split(text, "\n")})
		return
	}

	it := interp.New(s.sess, s.scope, s.out)
	it.Run(prog)
}
