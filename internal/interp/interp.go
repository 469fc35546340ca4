// Package interp implements the tree-walking evaluator that runs a
// checked Program. It shares the session's function registry (built by
// internal/checker's pre-pass) and runs on the internal/symtab.Stack
// handed to New, the same stack the parser and checker used, so its
// module-scope table carries every enum constant and struct default
// the checker wrote.
//
// Grounded on emul/exec.go's fetch-decode-execute loop, generalized
// from that CPU's flat instruction stream to a recursive walk over
// internal/ast nodes, and on
// original_source/src/value.h's arithmetic dispatch for the operator
// table in arith.go.
package interp

import (
	"fmt"
	"io"

	"github.com/gmofishsauce/yapc/internal/ast"
	"github.com/gmofishsauce/yapc/internal/diag"
	"github.com/gmofishsauce/yapc/internal/session"
	"github.com/gmofishsauce/yapc/internal/symtab"
	"github.com/gmofishsauce/yapc/internal/token"
	"github.com/gmofishsauce/yapc/internal/types"
	"github.com/gmofishsauce/yapc/internal/value"
)

func tokenFor(name string) token.Token { return token.Token{Type: token.IDENT, Lexeme: name} }

// signal is how break/continue/return propagate up through the
// recursive Exec* calls without Go-level panics.
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

type signal struct {
	kind signalKind
	ret  value.Value
}

// Interp evaluates a checked Program against a session and a scope
// stack shared with the front end.
type Interp struct {
	sess  *session.Session
	scope *symtab.Stack
	out   io.Writer
}

// New returns an Interp writing `print` output to out.
func New(sess *session.Session, scope *symtab.Stack, out io.Writer) *Interp {
	return &Interp{sess: sess, scope: scope, out: out}
}

// Run executes every top-level declaration in prog in order. Top-level
// statement order is preserved for declarations that carry
// initializers with side effects (e.g. print inside an array
// initializer is not possible in this language, but order still
// matters for enum/struct registration before first use). Run does not
// itself invoke "main" — callers that want whole-program semantics call
// CallMain once after every top-level declaration has been executed;
// internal/replshell, which calls Run once per typed statement against
// a persistent Interp, deliberately does not, so declaring main at the
// prompt doesn't re-run it on every later line.
func (in *Interp) Run(prog *ast.Program) {
	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.VarDecl:
			in.execVarDecl(n)
		case *ast.EnumDecl, *ast.StructDecl, *ast.FuncDecl:
			// Declarations with no runtime effect of their own: enum/struct
			// metadata and functions are invoked only by call.
		default:
			in.execStmt(d)
		}
	}
}

// CallMain invokes the registered "main" function with no arguments, if
// one has been declared, and reports whether it found one to call.
func (in *Interp) CallMain() bool {
	main, ok := in.sess.Functions["main"]
	if !ok {
		return false
	}
	in.callFunction(main, nil)
	return true
}

func (in *Interp) fatal(format string, args ...interface{}) {
	diag.Fatal(diag.INTERPRETER, format, args...)
}

// execStmt runs one statement, returning a non-none signal if a
// break/continue/return should propagate to an enclosing construct.
func (in *Interp) execStmt(s ast.Stmt) signal {
	switch n := s.(type) {
	case *ast.Block:
		return in.execBlock(n)
	case *ast.VarDecl:
		in.execVarDecl(n)
	case *ast.FuncDecl, *ast.EnumDecl, *ast.StructDecl:
		// nested declarations are not evaluated positionally
	case *ast.IfStmt:
		return in.execIf(n)
	case *ast.WhileStmt:
		return in.execWhile(n)
	case *ast.ForStmt:
		return in.execFor(n)
	case *ast.BreakStmt:
		return signal{kind: signalBreak}
	case *ast.ContinueStmt:
		return signal{kind: signalContinue}
	case *ast.ReturnStmt:
		var v value.Value
		if n.Result != nil {
			v = in.eval(n.Result)
		}
		return signal{kind: signalReturn, ret: v}
	case *ast.PrintStmt:
		v := in.eval(n.Arg)
		fmt.Fprintln(in.out, value.Format(v))
	case *ast.ExprStmt:
		in.eval(n.X)
	}
	return signal{}
}

func (in *Interp) execBlock(b *ast.Block) signal {
	in.scope.Push()
	defer in.scope.Pop()
	for _, st := range b.Stmts {
		if sig := in.execStmt(st); sig.kind != signalNone {
			return sig
		}
	}
	return signal{}
}

func (in *Interp) execVarDecl(n *ast.VarDecl) {
	sym, ok := in.scope.Lookup(n.Token)
	if !ok {
		sym = &symtab.Symbol{Token: n.Token, Type: n.DeclType}
		in.scope.Add(sym)
	}
	if n.Init == nil {
		sym.Value = value.Zero(n.DeclType)
		return
	}
	if il, ok := n.Init.(*ast.InitializerList); ok {
		sym.Value = in.evalInitializerList(il, n.DeclType)
		return
	}
	sym.Value = convert(in.eval(n.Init), n.DeclType)
}

func (in *Interp) evalInitializerList(il *ast.InitializerList, declType *types.Type) value.Value {
	elemType := declType.ElementType()
	elems := make([]value.Value, len(il.Elems))
	for i, e := range il.Elems {
		elems[i] = convert(in.eval(e), elemType)
	}
	return value.NewArray(declType, elems)
}

func (in *Interp) execIf(n *ast.IfStmt) signal {
	if in.eval(n.Cond).B {
		return in.execBlock(n.Then)
	}
	if n.Else != nil {
		return in.execStmt(n.Else)
	}
	return signal{}
}

func (in *Interp) execWhile(n *ast.WhileStmt) signal {
	for in.eval(n.Cond).B {
		sig := in.execBlock(n.Body)
		if sig.kind == signalBreak {
			break
		}
		if sig.kind == signalReturn {
			return sig
		}
	}
	return signal{}
}

func (in *Interp) execFor(n *ast.ForStmt) signal {
	in.scope.Push()
	defer in.scope.Pop()
	if n.Init != nil {
		in.execStmt(n.Init)
	}
	for n.Cond == nil || in.eval(n.Cond).B {
		sig := in.execForBody(n.Body)
		if sig.kind == signalBreak {
			break
		}
		if sig.kind == signalReturn {
			return sig
		}
		if n.Post != nil {
			in.execStmt(n.Post)
		}
	}
	return signal{}
}

func (in *Interp) execForBody(b *ast.Block) signal {
	in.scope.Push()
	defer in.scope.Pop()
	for _, st := range b.Stmts {
		if sig := in.execStmt(st); sig.kind != signalNone {
			return sig
		}
	}
	return signal{}
}

// callFunction invokes fn with already-evaluated args, running its body
// in a fresh scope seeded with the bound parameters, and returns its
// result (the zero Value for a void function or a missing return,
// which the checker has already flagged as an error in the latter
// case).
func (in *Interp) callFunction(fn *ast.FuncDecl, args []value.Value) value.Value {
	in.scope.Push()
	defer in.scope.Pop()
	for i, p := range fn.Params {
		var v value.Value
		if i < len(args) {
			v = convert(args[i], p.Type)
		}
		in.scope.Add(&symtab.Symbol{
			Token: tokenFor(p.Name),
			State: symtab.StateDefined,
			Type:  p.Type,
			Value: v,
		})
	}
	for _, st := range fn.Body.Stmts {
		sig := in.execStmt(st)
		if sig.kind == signalReturn {
			return convert(sig.ret, fn.ReturnType)
		}
	}
	return value.Zero(fn.ReturnType)
}
