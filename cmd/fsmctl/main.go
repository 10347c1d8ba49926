/*
Fsmctl builds and runs finite automata, regexes, context-free grammars, and
pushdown automata given on the command line or read interactively.

Usage:

	fsmctl dfa run <dfa-file> <input>
		Load a DFA description from a TOML file and report whether it
		accepts input.

	fsmctl regex compile <pattern>
		Compile a regex to a minimised DFA via Thompson construction and
		subset construction, printing its transition table.

		-d, --dot
			Also print the Graphviz DOT source for the resulting DFA.

		-V, --verbose INPUT
			Also run the resulting DFA against INPUT and print a
			Pre/Input/Next trace of every step, per DFA.RunVerbose.

	fsmctl lex <source-file>
		Scan source-file with the built-in C-- token definitions
		(config/cmm_tokens.toml) and print the resulting token stream.

	fsmctl repl
		Start an interactive session that accepts one regex pattern per
		line, printing the transition table of its minimised DFA for each.

		--direct
			Force reading directly from stdin instead of going through
			GNU readline.

The flags are:

	-v, --version
		Give the current version of fsmctl and then exit.

Once a session has started, type "QUIT" to exit the REPL.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/carpfsm/internal/graph"
	"github.com/dekarrin/carpfsm/internal/input"
	"github.com/dekarrin/carpfsm/internal/lex"
	"github.com/dekarrin/carpfsm/internal/regexc"
	"github.com/spf13/pflag"

	"github.com/dekarrin/carpfsm/config"
)

const version = "0.1.0"

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad arguments were given on the command
	// line.
	ExitUsageError

	// ExitRunError indicates an unsuccessful program execution due to a
	// problem while running the requested operation.
	ExitRunError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the requested operation.
	ExitInitError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagDot     *bool   = pflag.BoolP("dot", "d", false, "Also print Graphviz DOT source for the resulting DFA")
	flagVerbose *string = pflag.StringP("verbose", "V", "", "Also run the compiled DFA against this input and print a step trace")
	flagDirect  *bool   = pflag.Bool("direct", false, "In repl mode, force reading directly from stdin instead of going through GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("fsmctl %s\n", version)
		return
	}

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: no subcommand given; see fsmctl -h")
		returnCode = ExitUsageError
		return
	}

	var err error
	switch args[0] {
	case "dfa":
		err = cmdDFA(args[1:])
	case "regex":
		err = cmdRegex(args[1:])
	case "lex":
		err = cmdLex(args[1:])
	case "repl":
		err = cmdRepl()
	default:
		err = fmt.Errorf("unknown subcommand %q", args[0])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitRunError
		return
	}
}

func cmdDFA(args []string) error {
	if len(args) < 3 || args[0] != "run" {
		return fmt.Errorf("usage: fsmctl dfa run <dfa-file> <input>")
	}

	var desc config.DFAFile
	if err := config.LoadDFAFile(args[1], &desc); err != nil {
		returnCode = ExitInitError
		return fmt.Errorf("load DFA file: %w", err)
	}

	dfa := desc.Build()
	accepted, trace := dfa.RunVerbose(args[2])

	for _, step := range trace {
		next := step.Next
		if next == "" {
			next = "(undefined)"
		}
		fmt.Printf("  %s --%s--> %s\n", step.Pre, step.Input, next)
	}

	if accepted {
		fmt.Println("ACCEPT")
	} else {
		fmt.Println("REJECT")
		returnCode = ExitRunError
	}
	return nil
}

func cmdRegex(args []string) error {
	if len(args) < 2 || args[0] != "compile" {
		return fmt.Errorf("usage: fsmctl regex compile <pattern>")
	}
	pattern := args[1]

	dfa, err := regexc.CompileDFA(pattern)
	if err != nil {
		returnCode = ExitInitError
		return fmt.Errorf("compile regex: %w", err)
	}
	min := dfa.Minimize(false)

	fmt.Println(min.String())

	if *flagDot {
		g := graph.FromDFA(min)
		fmt.Println(g.DOT())
	}

	if *flagVerbose != "" {
		accepted, trace := min.RunVerbose(*flagVerbose)
		for _, step := range trace {
			next := step.Next
			if next == "" {
				next = "(undefined)"
			}
			fmt.Printf("  Pre: %s  Input: %s  Next: %s\n", step.Pre, step.Input, next)
		}
		if accepted {
			fmt.Println("ACCEPT")
		} else {
			fmt.Println("REJECT")
		}
	}
	return nil
}

func cmdLex(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: fsmctl lex <source-file>")
	}

	defs, err := config.LoadLexerDefs("config/cmm_tokens.toml")
	if err != nil {
		returnCode = ExitInitError
		return fmt.Errorf("load lexer definitions: %w", err)
	}
	kinds, err := defs.Compile()
	if err != nil {
		returnCode = ExitInitError
		return fmt.Errorf("compile lexer definitions: %w", err)
	}

	scanner, err := lex.New(kinds)
	if err != nil {
		returnCode = ExitInitError
		return fmt.Errorf("build scanner: %w", err)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		returnCode = ExitInitError
		return fmt.Errorf("read source file: %w", err)
	}

	toks, err := scanner.Scan(string(src))
	if err != nil {
		returnCode = ExitRunError
		return fmt.Errorf("scan: %w", err)
	}

	lastLine := 0
	for _, t := range toks {
		fmt.Println(t.String())
		lastLine = t.Line
	}
	fmt.Printf("%d tokens, %d lines\n", len(toks), lastLine)
	return nil
}

// lineReader is satisfied by both input.InteractiveLineReader and
// input.DirectLineReader.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

func cmdRepl() error {
	var reader lineReader
	var err error

	if *flagDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		reader, err = input.NewInteractiveReader("fsmctl> ")
		if err != nil {
			returnCode = ExitInitError
			return fmt.Errorf("start REPL: %w", err)
		}
	}
	defer reader.Close()

	for {
		line, err := reader.ReadLine()
		if err != nil {
			return nil
		}

		if strings.EqualFold(line, "QUIT") {
			return nil
		}

		dfa, err := regexc.CompileDFA(line)
		if err != nil {
			fmt.Printf("  ERROR: %s\n", err.Error())
			continue
		}
		min := dfa.Minimize(false)
		fmt.Println(min.String())
	}
}
