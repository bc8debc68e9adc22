package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/mend/internal/mcptools"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Strategy    string
	Dedup       bool
	Write       bool
	SyntaxCheck bool
	Verbose     bool
	ServeMCP    bool
	HTTPAddr    string
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("mend", flag.ContinueOnError)
	fs.StringVar(&flags.Strategy, "strategy", "", "resolution strategy: accept-left, accept-right, accept-both, structural, ai-suggested")
	fs.BoolVar(&flags.Dedup, "dedup", false, "drop duplicate lines when combining with accept-both")
	fs.BoolVar(&flags.Write, "write", false, "write merged output back to the files and stage them")
	fs.BoolVar(&flags.SyntaxCheck, "syntax-check", false, "validate merged output with a language grammar")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server on stdio")
	fs.StringVar(&flags.HTTPAddr, "http", "", "serve the MCP tools over HTTP at this address")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: mend [flags] <command> [files...]\n\ncommands:\n")
		fmt.Fprintf(fs.Output(), "  status            show the in-progress operation and conflicted files\n")
		fmt.Fprintf(fs.Output(), "  resolve [files]   resolve conflicts (all conflicted files when none given)\n\nflags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	if flags.ServeMCP {
		server := mcptools.NewMendMCPServer(mcptools.NewResolveService())
		return mcptools.RunMCPServerStdio(context.Background(), server)
	}
	if flags.HTTPAddr != "" {
		return mcptools.RunMCPServerHTTP(context.Background(), mcptools.NewResolveService(), flags.HTTPAddr)
	}

	switch fs.Arg(0) {
	case "", "status":
		return runStatus()
	case "resolve":
		return runResolve(flags, fs.Args()[1:])
	}
	return fmt.Errorf("unknown command: %s", fs.Arg(0))
}
