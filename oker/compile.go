package oker

import "io"

// CompileResult carries every intermediate artifact the CLI's
// diagnostic flags need to inspect, alongside the final runnable
// instruction stream.
type CompileResult struct {
	Tokens       []Token
	AST          *Program
	PreOptimized []Instruction
	Final        []Instruction
}

// Compile runs the full pipeline — lex, parse, analyze, generate,
// optimize, backpatch — stopping at the first failing stage.
func Compile(src []byte) (*CompileResult, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	prog, err := NewParser(toks).Parse()
	if err != nil {
		return &CompileResult{Tokens: toks}, err
	}
	if err := Analyze(prog); err != nil {
		return &CompileResult{Tokens: toks, AST: prog}, err
	}
	instrs, labels, err := Generate(prog)
	if err != nil {
		return &CompileResult{Tokens: toks, AST: prog}, err
	}
	pre := make([]Instruction, len(instrs))
	copy(pre, instrs)

	optimized := Optimize(instrs, labels)
	final, err := Backpatch(optimized, labels)
	if err != nil {
		return &CompileResult{Tokens: toks, AST: prog, PreOptimized: pre}, err
	}
	return &CompileResult{Tokens: toks, AST: prog, PreOptimized: pre, Final: final}, nil
}

// Execute runs a backpatched instruction stream to completion and
// reports the process exit status it implies: 0 on a clean HALT, the
// requested code for an 'exit' built-in, or 1 for an uncaught
// runtime error (which is also returned, for diagnostic reporting).
func Execute(instrs []Instruction, out io.Writer, in io.Reader) (int, error) {
	vm := NewVM(instrs)
	if out != nil {
		vm.Out = out
	}
	if in != nil {
		vm.In = in
	}
	err := vm.Run()
	if err == nil {
		return 0, nil
	}
	if exitSig, ok := err.(*ExitSignal); ok {
		return exitSig.Code, nil
	}
	return 1, err
}
