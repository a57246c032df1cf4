// Package repl is the interactive read-check-eval loop. Bindings persist for
// the lifetime of the session.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"tern/internal/checker"
	"tern/internal/evaluator"
	"tern/internal/lexer"
	"tern/internal/parser"
	"tern/internal/stdlib"
)

const PROMPT = ">> "

func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	ev := evaluator.New()
	ck := checker.New()
	stdlib.Bind(ev, ck)

	for {
		fmt.Fprint(out, PROMPT)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		tokens, lexErr := lexer.New(line).Tokenize()
		if lexErr != nil {
			fmt.Fprintf(out, "\t%s\n", lexErr)
			continue
		}

		// Recovered statements still run; only the bad ones are dropped.
		p := parser.New(tokens)
		program := p.ParseProgram()
		if len(p.Errors()) != 0 {
			printParserErrors(out, p.Errors())
		}

		if err := ck.CheckPersistent(program); err != nil {
			fmt.Fprintf(out, "\t%s\n", err)
			continue
		}

		result, runErr := ev.InterpretPersistent(program)
		if runErr != nil {
			fmt.Fprintf(out, "\t%s\n", runErr)
			continue
		}
		if result != nil {
			io.WriteString(out, result.Inspect())
			io.WriteString(out, "\n")
		}
	}
}

func printParserErrors(out io.Writer, errors []*parser.ParseError) {
	io.WriteString(out, " parser errors:\n")
	for _, e := range errors {
		io.WriteString(out, "\t"+e.Error()+"\n")
	}
}
