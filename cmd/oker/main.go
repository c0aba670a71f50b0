package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/AbdelkaderCE/Oker/oker"
)

func main() {
	var (
		help      bool
		tokens    bool
		parseFl   bool
		semantic  bool
		bytecode  bool
		timing    bool
		verbose   bool
		cachePath string
	)
	flag.BoolVar(&help, "h", false, "show usage")
	flag.BoolVar(&help, "help", false, "show usage")
	flag.BoolVar(&tokens, "t", false, "dump tokens and exit")
	flag.BoolVar(&tokens, "tokens", false, "dump tokens and exit")
	flag.BoolVar(&parseFl, "p", false, "dump AST and exit")
	flag.BoolVar(&parseFl, "parse", false, "dump AST and exit")
	flag.BoolVar(&semantic, "s", false, "analyze only")
	flag.BoolVar(&semantic, "semantic", false, "analyze only")
	flag.BoolVar(&bytecode, "b", false, "dump pre-optimized bytecode and exit")
	flag.BoolVar(&bytecode, "bytecode", false, "dump pre-optimized bytecode and exit")
	flag.BoolVar(&timing, "time", false, "print elapsed time in milliseconds")
	flag.BoolVar(&verbose, "v", false, "announce each phase")
	flag.BoolVar(&verbose, "verbose", false, "announce each phase")
	flag.StringVar(&cachePath, "cache", "", "bytecode cache database path")
	flag.Parse()

	if help || flag.NArg() == 0 {
		usage()
		if help {
			os.Exit(0)
		}
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0), tokens, parseFl, semantic, bytecode, timing, verbose, cachePath))
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: oker [-h] [-t] [-p] [-s] [-b] [--time] [-v] [--cache path] <source-file>")
}

func announce(verbose bool, phase string) {
	if verbose {
		fmt.Fprintf(os.Stderr, "oker: %s\n", phase)
	}
}

func run(path string, tokens, parseOnly, semanticOnly, bytecode, timing, verbose bool, cachePath string) int {
	start := time.Now()

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cachePath != "" && !tokens && !parseOnly && !semanticOnly && !bytecode {
		if final, ok, err := loadCached(cachePath, src, verbose); err == nil && ok {
			announce(verbose, "executing (cache hit)")
			code, runErr := oker.Execute(final, os.Stdout, os.Stdin)
			if runErr != nil {
				fmt.Fprintln(os.Stderr, runErr)
			}
			if timing {
				fmt.Fprintf(os.Stderr, "elapsed: %dms\n", time.Since(start).Milliseconds())
			}
			return code
		}
	}

	announce(verbose, "lexing")
	toks, err := oker.Tokenize(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if tokens {
		oker.DumpTokens(os.Stdout, toks)
		return 0
	}

	announce(verbose, "parsing")
	prog, err := oker.NewParser(toks).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if parseOnly {
		oker.DumpAST(os.Stdout, prog)
		return 0
	}

	announce(verbose, "analyzing")
	if err := oker.Analyze(prog); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if semanticOnly {
		return 0
	}

	announce(verbose, "generating bytecode")
	instrs, labels, err := oker.Generate(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if bytecode {
		oker.DumpBytecode(os.Stdout, instrs)
		return 0
	}

	announce(verbose, "optimizing")
	optimized := oker.Optimize(instrs, labels)

	announce(verbose, "backpatching")
	final, err := oker.Backpatch(optimized, labels)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cachePath != "" {
		if err := storeCached(cachePath, src, final); err != nil {
			fmt.Fprintf(os.Stderr, "oker: cache store failed: %v\n", err)
		}
	}

	announce(verbose, "executing")
	code, runErr := oker.Execute(final, os.Stdout, os.Stdin)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
	}

	if timing {
		fmt.Fprintf(os.Stderr, "elapsed: %dms\n", time.Since(start).Milliseconds())
	}
	return code
}
