/*
Redhorsegen compiles grammars written in the rule-definition surface
language into LR(1) parse tables and can run them interactively.

Usage:

	redhorsegen compile [flags] GRAMMAR_FILE
	redhorsegen repl [flags] GRAMMAR_FILE

The flags are:

	-c, --config FILE
		Read cache and server settings from the given TOML config file.

	-d, --dump
		Print the compiled table alongside the fingerprint (compile only).

Once a repl session has started, each line is parsed as a complete
self-contained input for the loaded grammar's start symbol; type "QUIT" to
exit.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/kestrel-dev/redhorse/automaton"
	"github.com/kestrel-dev/redhorse/dsl"
	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/kestrel-dev/redhorse/lex"
	"github.com/kestrel-dev/redhorse/parse"
	"github.com/kestrel-dev/redhorse/internal/version"
	"github.com/kestrel-dev/redhorse/rgcache"
	"github.com/kestrel-dev/redhorse/rgconfig"
	"github.com/spf13/pflag"
)

const (
	exitSuccess = iota
	exitUsageError
	exitCompileError
	exitRuntimeError
)

var (
	configFile  *string = pflag.StringP("config", "c", "", "TOML config file for cache settings")
	dump        *bool   = pflag.BoolP("dump", "d", false, "print the compiled table alongside the fingerprint")
	flagVersion *bool   = pflag.BoolP("version", "v", false, "print the version and exit")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	args := pflag.Args()

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: redhorsegen {compile|repl} GRAMMAR_FILE")
		os.Exit(exitUsageError)
	}

	cfg := rgconfig.Default()
	if *configFile != "" {
		var err error
		cfg, err = rgconfig.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: load config: %s\n", err)
			os.Exit(exitUsageError)
		}
	}

	sub, grammarFile := args[0], args[1]

	src, err := os.ReadFile(grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: read grammar file: %s\n", err)
		os.Exit(exitUsageError)
	}

	g, err := dsl.Parse(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: grammar syntax: %s\n", err)
		os.Exit(exitCompileError)
	}

	aut, err := automaton.Build(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: automaton construction: %s\n", err)
		os.Exit(exitCompileError)
	}

	table, err := parse.BuildTable(aut, g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: table construction: %s\n", err)
		os.Exit(exitCompileError)
	}

	switch sub {
	case "compile":
		runCompile(cfg, g, table)
	case "repl":
		runRepl(g, table)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown subcommand %q\n", sub)
		os.Exit(exitUsageError)
	}
}

func runCompile(cfg rgconfig.Config, g *grammar.Grammar, table *parse.Table) {
	fmt.Printf("fingerprint: %s\n", g.Fingerprint())
	fmt.Printf("states: %d\n", len(table.Rows))

	if *dump {
		fmt.Println(table.String(g))
	}

	store, err := rgcache.Open(cfg.Cache.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: open cache: %s\n", err)
		os.Exit(exitRuntimeError)
	}
	defer store.Close()

	if _, err := store.Put(context.Background(), g, table); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: cache table: %s\n", err)
		os.Exit(exitRuntimeError)
	}
}

func runRepl(g *grammar.Grammar, table *parse.Table) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: start readline: %s\n", err)
		os.Exit(exitRuntimeError)
	}
	defer rl.Close()

	literals := literalLexemes(g)
	p := parse.NewParser(table, g)
	for _, nt := range g.NonTerminals() {
		for _, r := range g.RulesFor(nt) {
			if r.Callback != "" {
				cb := r.Callback
				p.RegisterCallback(cb, func(toks []lex.Token) error {
					fmt.Printf("  [%s] %v\n", cb, toks)
					return nil
				})
			}
		}
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		if line == "QUIT" {
			return
		}
		if line == "" {
			continue
		}

		sc := lex.NewScanner(line, literals)
		if err := p.Run(sc); err != nil {
			fmt.Printf("error: %s\n", err)
			continue
		}
		fmt.Println("ok")
	}
}

func literalLexemes(g *grammar.Grammar) []string {
	var out []string
	for _, sym := range g.Terminals() {
		if grammar.IsLiteral(sym) {
			out = append(out, grammar.LiteralLexeme(sym))
		}
	}
	return out
}
