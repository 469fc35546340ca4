// Package testharness runs fixture source files end to end (lex,
// parse, check, interpret) and compares the observed outcome against
// an expectation encoded in the fixture itself, tallying pass/fail
// counts the way a CI-style regression runner would.
//
// Grounded on original_source/tests/assert.h's TestResults{succeeded,
// failed} accumulator and Assert(expected_code, actual_code, ...)
// signature, and on test_io.h's ExtractExpectedErrorCode/
// ExtractExpectedPrintOutput convention of reading the fixture's own
// comment header for what it expects — reproduced here as
// parseExpectation scanning a leading "// expect:" comment block
// instead of the original's ad hoc string search.
package testharness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmofishsauce/yapc/internal/checker"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/interp"
	"github.com/gmofishsauce/yapc/internal/lexer"
	"github.com/gmofishsauce/yapc/internal/parser"
	"github.com/gmofishsauce/yapc/internal/session"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/gmofishsauce/yapc/internal/value"
)

// Expectation is what one fixture claims about its own outcome.
type Expectation struct {
	ErrorCode diag.ErrorCode // diag.OK if the fixture expects to run clean
	Output    string         // expected combined stdout, "" if not checked
	Check     string         // expected value.Format(check-symbol), "" if not checked
}

// Result is the outcome of running one fixture against its Expectation.
type Result struct {
	Name    string
	Passed  bool
	Detail  string
}

// Results tallies outcomes across a run, mirroring
// original_source/tests/assert.h's TestResults{succeeded, failed}.
type Results struct {
	Succeeded int
	Failed    int
	Items     []Result
}

func (r *Results) record(res Result) {
	r.Items = append(r.Items, res)
	if res.Passed {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// parseExpectation reads a leading "// expect: <CODE>",
// "// expect-output: <text>", or "// expect-check: <text>" comment
// line from source. Fixtures with none of these markers are assumed to
// expect a clean run with nothing further checked.
func parseExpectation(source string) Expectation {
	exp := Expectation{ErrorCode: diag.OK}
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "//") {
			if line != "" {
				break
			}
			continue
		}
		body := strings.TrimSpace(strings.TrimPrefix(line, "//"))
		switch {
		case strings.HasPrefix(body, "expect:"):
			name := strings.TrimSpace(strings.TrimPrefix(body, "expect:"))
			exp.ErrorCode = codeByName(name)
		case strings.HasPrefix(body, "expect-output:"):
			exp.Output = strings.TrimSpace(strings.TrimPrefix(body, "expect-output:"))
		case strings.HasPrefix(body, "expect-check:"):
			exp.Check = strings.TrimSpace(strings.TrimPrefix(body, "expect-check:"))
		}
	}
	return exp
}

func codeByName(name string) diag.ErrorCode {
	for c := diag.OK; c <= diag.UNKNOWN; c++ {
		if c.String() == name {
			return c
		}
	}
	return diag.OK
}

var checkToken = token.Token{Type: token.IDENT, Lexeme: "check"}

// RunFixture lexes, parses, checks, and (if the checker latch stayed
// OK) interprets name/source, then compares the observed ErrorCode,
// captured print output, and (if the fixture declares one) the `check`
// symbol's final Value against exp — the Go realization of
// original_source/tests/assert.h's Assert(expected, actual) plus
// test_io.h's check-symbol comparison.
func RunFixture(name, source string, exp Expectation) Result {
	sess := session.New(name, source)
	scope := symtab.NewStack()

	lx := lexer.New(name, source)
	p := parser.New(lx, sess, scope)
	prog := p.Parse()

	if sess.Latch.Code() == diag.OK {
		chk := checker.New(sess, scope)
		chk.Check(prog)
	}

	observedCode := sess.Latch.Code()
	var out bytes.Buffer
	if observedCode == diag.OK {
		it := interp.New(sess, scope, &out)
		it.Run(prog)
		it.CallMain()
	}

	if observedCode != exp.ErrorCode {
		return Result{Name: name, Passed: false, Detail: fmt.Sprintf("expected error code %s, got %s", exp.ErrorCode, observedCode)}
	}
	if exp.Output != "" && strings.TrimRight(out.String(), "\n") != exp.Output {
		return Result{Name: name, Passed: false, Detail: fmt.Sprintf("expected output %q, got %q", exp.Output, out.String())}
	}
	if exp.Check != "" {
		sym, ok := scope.Lookup(checkToken)
		if !ok {
			return Result{Name: name, Passed: false, Detail: "fixture declares expect-check but has no 'check' symbol"}
		}
		if got := value.Format(sym.Value); got != exp.Check {
			return Result{Name: name, Passed: false, Detail: fmt.Sprintf("expected check == %q, got %q", exp.Check, got)}
		}
	}
	return Result{Name: name, Passed: true}
}

// Bucket tallies fixture pass/fail counts, named for
// original_source/tests/hashtable.c's per-file-name TestResults bucket.
type Bucket = Results

// RunAll runs every named fixture, parsing its own expectation from its
// source, and returns the tally.
func RunAll(fixtures map[string]string) *Bucket {
	results := &Bucket{}
	for name, source := range fixtures {
		exp := parseExpectation(source)
		results.record(RunFixture(name, source, exp))
	}
	return results
}

// Run walks every ".yapl" fixture file under dir, runs each one through
// RunFixture against its own leading-comment expectation, reports a
// t.Run subtest per file, and returns the accumulated Bucket — the Go
// analog of original_source/tests/hashtable.c driving one pass/fail
// bucket across every tests/test_*.c fixture.
func Run(dir string, t *testing.T) *Bucket {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("testharness: reading %s: %v", dir, err)
	}
	bucket := &Bucket{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yapl") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("testharness: reading %s: %v", path, err)
		}
		exp := parseExpectation(string(src))
		res := RunFixture(e.Name(), string(src), exp)
		bucket.record(res)
		t.Run(e.Name(), func(t *testing.T) {
			if !res.Passed {
				t.Error(res.Detail)
			}
		})
	}
	return bucket
}

// Summary renders a one-line-per-fixture report followed by the
// succeeded/failed tally, matching the shape of
// original_source/tests/assert.h's PrintResults.
func (r *Results) Summary() string {
	var sb strings.Builder
	for _, item := range r.Items {
		status := "PASS"
		if !item.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "%s: %s", status, item.Name)
		if item.Detail != "" {
			fmt.Fprintf(&sb, " (%s)", item.Detail)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%d passed, %d failed\n", r.Succeeded, r.Failed)
	return sb.String()
}
