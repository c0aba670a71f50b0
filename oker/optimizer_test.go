package oker

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestIncrementCollapsesToSingleInstruction(t *testing.T) {
	prog, err := ParseSource([]byte("let x = 0\nx = x + 1"))
	be.Err(t, err, nil)
	be.Err(t, Analyze(prog), nil)
	instrs, labels, err := Generate(prog)
	be.Err(t, err, nil)

	optimized := Optimize(instrs, labels)
	be.Equal(t, len(optimized), 4) // PUSH_NUMBER 0, DECLARE_VAR x, INCREMENT x, HALT
	be.Equal(t, optimized[2].Op, OpIncrement)
	be.Equal(t, optimized[2].Operands[0].Name, "x")
}

func TestDecrementCollapsesToSingleInstruction(t *testing.T) {
	prog, err := ParseSource([]byte("let x = 5\nx = x - 1"))
	be.Err(t, err, nil)
	be.Err(t, Analyze(prog), nil)
	instrs, labels, err := Generate(prog)
	be.Err(t, err, nil)

	optimized := Optimize(instrs, labels)
	be.Equal(t, optimized[len(optimized)-2].Op, OpDecrement) // followed by HALT
}

func TestOptimizerDoesNotCollapseMismatchedVariables(t *testing.T) {
	prog, err := ParseSource([]byte("let x = 0\nlet y = 0\ny = x + 1"))
	be.Err(t, err, nil)
	be.Err(t, Analyze(prog), nil)
	instrs, labels, err := Generate(prog)
	be.Err(t, err, nil)

	optimized := Optimize(instrs, labels)
	for _, in := range optimized {
		be.True(t, in.Op != OpIncrement && in.Op != OpDecrement)
	}
}

func TestOptimizerPreservesJumpTargetsAcrossCollapse(t *testing.T) {
	src := "let n = 0\nwhile n < 5:\n  n = n + 1\nend\nsay n"
	prog, err := ParseSource([]byte(src))
	be.Err(t, err, nil)
	be.Err(t, Analyze(prog), nil)
	instrs, labels, err := Generate(prog)
	be.Err(t, err, nil)

	optimized := Optimize(instrs, labels)
	final, err := Backpatch(optimized, labels)
	be.Err(t, err, nil)
	for _, in := range final {
		for _, o := range in.Operands {
			if o.Kind == OperandAddr {
				be.True(t, o.Addr >= 0 && o.Addr < len(final))
			}
		}
	}
}
