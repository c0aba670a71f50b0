package oker

import (
	"fmt"
	"io"
	"strings"
)

// DumpTokens prints one token per line as "line:column kind", used by
// the -t/--tokens CLI flag.
func DumpTokens(w io.Writer, toks []Token) {
	for _, t := range toks {
		fmt.Fprintf(w, "%d:%d %s\n", t.Line, t.Column, t)
	}
}

// DumpBytecode prints the instruction stream as "index: OPCODE operands",
// used by the -b/--bytecode CLI flag.
func DumpBytecode(w io.Writer, instrs []Instruction) {
	for i, in := range instrs {
		fmt.Fprintf(w, "%4d: %s\n", i, in)
	}
}

// DumpAST prints an indented tree of the program's statements, used
// by the -p/--parse CLI flag.
func DumpAST(w io.Writer, prog *Program) {
	for _, s := range prog.Stmts {
		dumpStmt(w, s, 0)
	}
}

func indent(w io.Writer, depth int) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
}

func dumpStmt(w io.Writer, s Stmt, depth int) {
	indent(w, depth)
	switch n := s.(type) {
	case *VarDecl:
		fmt.Fprintf(w, "VarDecl %s\n", n.Name)
		if n.Init != nil {
			dumpExpr(w, n.Init, depth+1)
		}
	case *AssignStmt:
		fmt.Fprintln(w, "Assign")
		dumpExpr(w, n.Target, depth+1)
		dumpExpr(w, n.Value, depth+1)
	case *FunctionDecl:
		fmt.Fprintf(w, "FunctionDecl %s(%s)\n", n.Name, strings.Join(n.Params, ", "))
		for _, st := range n.Body {
			dumpStmt(w, st, depth+1)
		}
	case *ClassDecl:
		fmt.Fprintf(w, "ClassDecl %s\n", n.Name)
		for _, m := range n.Methods {
			dumpStmt(w, m, depth+1)
		}
	case *IfStmt:
		fmt.Fprintln(w, "If")
		dumpExpr(w, n.Cond, depth+1)
		for _, st := range n.Then {
			dumpStmt(w, st, depth+1)
		}
		if len(n.Else) > 0 {
			indent(w, depth)
			fmt.Fprintln(w, "Else")
			for _, st := range n.Else {
				dumpStmt(w, st, depth+1)
			}
		}
	case *WhileStmt:
		fmt.Fprintln(w, "While")
		dumpExpr(w, n.Cond, depth+1)
		for _, st := range n.Body {
			dumpStmt(w, st, depth+1)
		}
	case *RepeatStmt:
		fmt.Fprintln(w, "Repeat")
		dumpExpr(w, n.Count, depth+1)
		for _, st := range n.Body {
			dumpStmt(w, st, depth+1)
		}
	case *ReturnStmt:
		fmt.Fprintln(w, "Return")
		if n.Value != nil {
			dumpExpr(w, n.Value, depth+1)
		}
	case *BreakStmt:
		fmt.Fprintln(w, "Break")
	case *ContinueStmt:
		fmt.Fprintln(w, "Continue")
	case *TryStmt:
		fmt.Fprintln(w, "Try")
		for _, st := range n.Body {
			dumpStmt(w, st, depth+1)
		}
		indent(w, depth)
		fmt.Fprintln(w, "Fail")
		for _, st := range n.Fail {
			dumpStmt(w, st, depth+1)
		}
	case *ExpressionStmt:
		fmt.Fprintln(w, "ExpressionStmt")
		dumpExpr(w, n.Expr, depth+1)
	}
}

func dumpExpr(w io.Writer, e Expr, depth int) {
	indent(w, depth)
	switch n := e.(type) {
	case *NumberLit:
		fmt.Fprintf(w, "NumberLit %v\n", n.Value)
	case *StringLit:
		fmt.Fprintf(w, "StringLit %q\n", n.Value)
	case *BoolLit:
		fmt.Fprintf(w, "BoolLit %v\n", n.Value)
	case *Identifier:
		fmt.Fprintf(w, "Identifier %s\n", n.Name)
	case *ListLit:
		fmt.Fprintln(w, "ListLit")
		for _, item := range n.Items {
			dumpExpr(w, item, depth+1)
		}
	case *DictLit:
		fmt.Fprintln(w, "DictLit")
		for _, entry := range n.Entries {
			dumpExpr(w, entry.Key, depth+1)
			dumpExpr(w, entry.Value, depth+1)
		}
	case *Index:
		fmt.Fprintln(w, "Index")
		dumpExpr(w, n.Object, depth+1)
		dumpExpr(w, n.At, depth+1)
	case *Member:
		fmt.Fprintf(w, "Member .%s\n", n.Property)
		dumpExpr(w, n.Object, depth+1)
	case *Binary:
		fmt.Fprintf(w, "Binary %s\n", n.Op)
		dumpExpr(w, n.Left, depth+1)
		dumpExpr(w, n.Right, depth+1)
	case *Unary:
		fmt.Fprintf(w, "Unary %s\n", n.Op)
		dumpExpr(w, n.Operand, depth+1)
	case *Call:
		fmt.Fprintf(w, "Call isNew=%v\n", n.IsNew)
		dumpExpr(w, n.Callee, depth+1)
		for _, a := range n.Args {
			dumpExpr(w, a, depth+1)
		}
	}
}
