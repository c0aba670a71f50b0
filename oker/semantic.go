package oker

import (
	"fmt"

	"github.com/AbdelkaderCE/Oker/internal/scope"
)

// CoarseType is the advisory type lattice used only for diagnostics;
// it never gates execution beyond the checks described below.
type CoarseType int

const (
	UNKNOWN CoarseType = iota
	NUMBER
	STRING
	BOOLEAN
	LIST
	DICTIONARY
	FUNCTION
	CLASS
	INSTANCE
	VOID
)

// SymbolKind is the closed set of things a name can denote.
type SymbolKind int

const (
	SymVar SymbolKind = iota
	SymFunction
	SymClass
)

// Symbol is a scope entry: a name bound to a kind and an advisory type.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    CoarseType
	Builtin bool
}

// SemanticError is a fatal error raised by the analyzer: an unresolved
// name, a control-flow statement out of context, or a statically
// provable type mismatch.
type SemanticError struct {
	Position
	Msg string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Analyzer performs the single tree walk described in the language's
// semantic pass: scope/symbol resolution, loop/function context
// tracking, and best-effort type propagation.
type Analyzer struct {
	scope     scope.Chain[*Symbol]
	loopDepth int
	funcDepth int
	classes   []string // stack of enclosing class names; non-empty means 'this' is legal
}

// NewAnalyzer builds an analyzer with a global scope pre-populated
// with the built-in function names.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{scope: scope.Root[*Symbol]()}
	for _, name := range builtinNames {
		a.scope.Define(name, &Symbol{Name: name, Kind: SymFunction, Type: FUNCTION, Builtin: true})
	}
	return a
}

// Analyze validates prog and returns the first error found, if any.
func Analyze(prog *Program) error {
	a := NewAnalyzer()
	return a.analyzeStmts(prog.Stmts)
}

func (a *Analyzer) enter() { a.scope = scope.Enclosed(a.scope) }
func (a *Analyzer) leave(prev scope.Chain[*Symbol]) { a.scope = prev }

func (a *Analyzer) analyzeStmts(stmts []Stmt) error {
	for _, s := range stmts {
		if err := a.analyzeStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStmt(s Stmt) error {
	switch n := s.(type) {
	case *VarDecl:
		typ := NUMBER
		if n.Init != nil {
			t, err := a.analyzeExpr(n.Init)
			if err != nil {
				return err
			}
			typ = t
		}
		a.scope.Define(n.Name, &Symbol{Name: n.Name, Kind: SymVar, Type: typ})
		return nil
	case *AssignStmt:
		if err := a.analyzeAssignTarget(n.Target); err != nil {
			return err
		}
		_, err := a.analyzeExpr(n.Value)
		return err
	case *FunctionDecl:
		a.scope.Define(n.Name, &Symbol{Name: n.Name, Kind: SymFunction, Type: FUNCTION})
		return a.analyzeFunctionBody(n)
	case *ClassDecl:
		a.scope.Define(n.Name, &Symbol{Name: n.Name, Kind: SymClass, Type: CLASS})
		a.classes = append(a.classes, n.Name)
		for _, m := range n.Methods {
			if err := a.analyzeFunctionBody(m); err != nil {
				return err
			}
		}
		a.classes = a.classes[:len(a.classes)-1]
		return nil
	case *IfStmt:
		if _, err := a.analyzeExpr(n.Cond); err != nil {
			return err
		}
		prev := a.scope
		a.enter()
		err := a.analyzeStmts(n.Then)
		a.leave(prev)
		if err != nil {
			return err
		}
		if n.Else != nil {
			prev := a.scope
			a.enter()
			err := a.analyzeStmts(n.Else)
			a.leave(prev)
			if err != nil {
				return err
			}
		}
		return nil
	case *WhileStmt:
		if _, err := a.analyzeExpr(n.Cond); err != nil {
			return err
		}
		prev := a.scope
		a.enter()
		a.loopDepth++
		err := a.analyzeStmts(n.Body)
		a.loopDepth--
		a.leave(prev)
		return err
	case *RepeatStmt:
		t, err := a.analyzeExpr(n.Count)
		if err != nil {
			return err
		}
		if t != NUMBER && t != UNKNOWN {
			return &SemanticError{Position: n.Position, Msg: "'repeat' count must be a number"}
		}
		prev := a.scope
		a.enter()
		a.loopDepth++
		err = a.analyzeStmts(n.Body)
		a.loopDepth--
		a.leave(prev)
		return err
	case *ReturnStmt:
		if a.funcDepth == 0 {
			return &SemanticError{Position: n.Position, Msg: "'return' outside a function"}
		}
		if n.Value != nil {
			_, err := a.analyzeExpr(n.Value)
			return err
		}
		return nil
	case *BreakStmt:
		if a.loopDepth == 0 {
			return &SemanticError{Position: n.Position, Msg: "'break' outside a loop"}
		}
		return nil
	case *ContinueStmt:
		if a.loopDepth == 0 {
			return &SemanticError{Position: n.Position, Msg: "'continue' outside a loop"}
		}
		return nil
	case *TryStmt:
		prev := a.scope
		a.enter()
		err := a.analyzeStmts(n.Body)
		a.leave(prev)
		if err != nil {
			return err
		}
		prev = a.scope
		a.enter()
		err = a.analyzeStmts(n.Fail)
		a.leave(prev)
		return err
	case *ExpressionStmt:
		_, err := a.analyzeExpr(n.Expr)
		return err
	default:
		return &SemanticError{Msg: fmt.Sprintf("unhandled statement %T", n)}
	}
}

func (a *Analyzer) analyzeFunctionBody(fn *FunctionDecl) error {
	prev := a.scope
	a.enter()
	for _, p := range fn.Params {
		a.scope.Define(p, &Symbol{Name: p, Kind: SymVar, Type: UNKNOWN})
	}
	a.funcDepth++
	err := a.analyzeStmts(fn.Body)
	a.funcDepth--
	a.leave(prev)
	return err
}

func (a *Analyzer) analyzeAssignTarget(target Expr) error {
	switch t := target.(type) {
	case *Identifier:
		if t.Name == "this" {
			return &SemanticError{Position: t.Position, Msg: "'this' is not assignable"}
		}
		if _, ok := a.scope.Resolve(t.Name); !ok {
			return &SemanticError{Position: t.Position, Msg: fmt.Sprintf("undefined identifier: %s", t.Name)}
		}
		return nil
	case *Index:
		if _, err := a.analyzeExpr(t.Object); err != nil {
			return err
		}
		_, err := a.analyzeExpr(t.At)
		return err
	case *Member:
		_, err := a.analyzeExpr(t.Object)
		return err
	default:
		return &SemanticError{Msg: "invalid assignment target"}
	}
}

func (a *Analyzer) analyzeExpr(e Expr) (CoarseType, error) {
	switch n := e.(type) {
	case *NumberLit:
		return NUMBER, nil
	case *StringLit:
		return STRING, nil
	case *BoolLit:
		return BOOLEAN, nil
	case *Identifier:
		if n.Name == "this" {
			if len(a.classes) == 0 {
				return UNKNOWN, &SemanticError{Position: n.Position, Msg: "'this' used outside a class method"}
			}
			return INSTANCE, nil
		}
		sym, ok := a.scope.Resolve(n.Name)
		if !ok {
			return UNKNOWN, &SemanticError{Position: n.Position, Msg: fmt.Sprintf("undefined identifier: %s", n.Name)}
		}
		return sym.Type, nil
	case *ListLit:
		for _, item := range n.Items {
			if _, err := a.analyzeExpr(item); err != nil {
				return UNKNOWN, err
			}
		}
		return LIST, nil
	case *DictLit:
		for _, entry := range n.Entries {
			if _, err := a.analyzeExpr(entry.Key); err != nil {
				return UNKNOWN, err
			}
			if _, err := a.analyzeExpr(entry.Value); err != nil {
				return UNKNOWN, err
			}
		}
		return DICTIONARY, nil
	case *Index:
		if _, err := a.analyzeExpr(n.Object); err != nil {
			return UNKNOWN, err
		}
		if _, err := a.analyzeExpr(n.At); err != nil {
			return UNKNOWN, err
		}
		return UNKNOWN, nil
	case *Member:
		if _, err := a.analyzeExpr(n.Object); err != nil {
			return UNKNOWN, err
		}
		return UNKNOWN, nil
	case *Unary:
		t, err := a.analyzeExpr(n.Operand)
		if err != nil {
			return UNKNOWN, err
		}
		switch n.Op {
		case Sub:
			if t != NUMBER && t != UNKNOWN {
				return UNKNOWN, &SemanticError{Position: n.Position, Msg: "unary '-' requires a numeric operand"}
			}
			return NUMBER, nil
		default: // Bang, Not
			return BOOLEAN, nil
		}
	case *Binary:
		lt, err := a.analyzeExpr(n.Left)
		if err != nil {
			return UNKNOWN, err
		}
		rt, err := a.analyzeExpr(n.Right)
		if err != nil {
			return UNKNOWN, err
		}
		return a.analyzeBinary(n, lt, rt)
	case *Call:
		return a.analyzeCall(n)
	default:
		return UNKNOWN, &SemanticError{Msg: fmt.Sprintf("unhandled expression %T", n)}
	}
}

func isConcrete(t CoarseType) bool { return t != UNKNOWN }

func (a *Analyzer) analyzeBinary(n *Binary, lt, rt CoarseType) (CoarseType, error) {
	switch n.Op {
	case And, Or:
		return BOOLEAN, nil
	case Eq, Ne, Lt, Le, Gt, Ge:
		return BOOLEAN, nil
	case Add:
		if lt == STRING || rt == STRING {
			return STRING, nil
		}
		if isConcrete(lt) && lt != NUMBER {
			return UNKNOWN, &SemanticError{Position: n.Position, Msg: "'+' requires numeric or string operands"}
		}
		if isConcrete(rt) && rt != NUMBER {
			return UNKNOWN, &SemanticError{Position: n.Position, Msg: "'+' requires numeric or string operands"}
		}
		if lt == UNKNOWN || rt == UNKNOWN {
			return UNKNOWN, nil
		}
		return NUMBER, nil
	case Sub, Mul, Div, Mod:
		if isConcrete(lt) && lt != NUMBER {
			return UNKNOWN, &SemanticError{Position: n.Position, Msg: "operator requires numeric operands"}
		}
		if isConcrete(rt) && rt != NUMBER {
			return UNKNOWN, &SemanticError{Position: n.Position, Msg: "operator requires numeric operands"}
		}
		if lt == UNKNOWN || rt == UNKNOWN {
			return UNKNOWN, nil
		}
		return NUMBER, nil
	default:
		return UNKNOWN, nil
	}
}

func (a *Analyzer) analyzeCall(n *Call) (CoarseType, error) {
	if n.IsNew {
		ident, ok := n.Callee.(*Identifier)
		if !ok {
			return UNKNOWN, &SemanticError{Position: n.Position, Msg: "'new' requires a class name"}
		}
		sym, ok := a.scope.Resolve(ident.Name)
		if !ok {
			return UNKNOWN, &SemanticError{Position: n.Position, Msg: fmt.Sprintf("undefined identifier: %s", ident.Name)}
		}
		if sym.Kind != SymClass {
			return UNKNOWN, &SemanticError{Position: n.Position, Msg: fmt.Sprintf("'%s' is not a class", ident.Name)}
		}
		for _, arg := range n.Args {
			if _, err := a.analyzeExpr(arg); err != nil {
				return UNKNOWN, err
			}
		}
		return INSTANCE, nil
	}
	switch callee := n.Callee.(type) {
	case *Identifier:
		if _, ok := a.scope.Resolve(callee.Name); !ok {
			return UNKNOWN, &SemanticError{Position: callee.Position, Msg: fmt.Sprintf("undefined identifier: %s", callee.Name)}
		}
	case *Member:
		if _, err := a.analyzeExpr(callee.Object); err != nil {
			return UNKNOWN, err
		}
	default:
		return UNKNOWN, &SemanticError{Position: n.Position, Msg: "call target must be a name or property access"}
	}
	for _, arg := range n.Args {
		if _, err := a.analyzeExpr(arg); err != nil {
			return UNKNOWN, err
		}
	}
	return UNKNOWN, nil
}
