package oker

import (
	"testing"

	"github.com/nalgeon/be"
)

func parseOne(t *testing.T, src string) Stmt {
	t.Helper()
	toks, err := Tokenize([]byte(src))
	be.Err(t, err, nil)
	prog, err := NewParser(toks).Parse()
	be.Err(t, err, nil)
	be.Equal(t, len(prog.Stmts), 1)
	return prog.Stmts[0]
}

func TestPrecedenceAdditiveBeforeMultiplicative(t *testing.T) {
	stmt := parseOne(t, "a + b * c")
	bin := stmt.(*ExpressionStmt).Expr.(*Binary)
	be.Equal(t, bin.Op, Add)
	be.Equal(t, bin.Left.(*Identifier).Name, "a")
	rhs := bin.Right.(*Binary)
	be.Equal(t, rhs.Op, Mul)
	be.Equal(t, rhs.Left.(*Identifier).Name, "b")
	be.Equal(t, rhs.Right.(*Identifier).Name, "c")
}

func TestPrecedenceMultiplicativeBeforeAdditive(t *testing.T) {
	stmt := parseOne(t, "a * b + c")
	bin := stmt.(*ExpressionStmt).Expr.(*Binary)
	be.Equal(t, bin.Op, Add)
	lhs := bin.Left.(*Binary)
	be.Equal(t, lhs.Op, Mul)
	be.Equal(t, lhs.Left.(*Identifier).Name, "a")
	be.Equal(t, lhs.Right.(*Identifier).Name, "b")
	be.Equal(t, bin.Right.(*Identifier).Name, "c")
}

func TestElseIfChainParses(t *testing.T) {
	src := "if a:\n  say 1\nelse if b:\n  say 2\nelse:\n  say 3\nend"
	toks, err := Tokenize([]byte(src))
	be.Err(t, err, nil)
	prog, err := NewParser(toks).Parse()
	be.Err(t, err, nil)
	be.Equal(t, len(prog.Stmts), 1)
	outer := prog.Stmts[0].(*IfStmt)
	be.Equal(t, len(outer.Else), 1)
	inner, ok := outer.Else[0].(*IfStmt)
	be.True(t, ok)
	be.Equal(t, len(inner.Else), 1)
}

func TestMissingEndReportsOpeningLine(t *testing.T) {
	_, err := ParseSource([]byte("if a:\n  say 1\n"))
	be.True(t, err != nil)
	perr, ok := err.(*ParseError)
	be.True(t, ok)
	be.Equal(t, perr.Line, 1)
}

func TestMissingColonIsParseError(t *testing.T) {
	_, err := ParseSource([]byte("if a\n  say 1\nend"))
	be.True(t, err != nil)
	_, ok := err.(*ParseError)
	be.True(t, ok)
}

func TestAssignmentTargets(t *testing.T) {
	stmt := parseOne(t, "x[0] = 1")
	assign := stmt.(*AssignStmt)
	_, ok := assign.Target.(*Index)
	be.True(t, ok)
}
