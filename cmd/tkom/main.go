package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	tkom "github.com/kam193/tkom"
)

const (
	appName     = "tkom"
	historyFile = ".tkom_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var (
	errColor = color.New(color.FgRed)
	banner   = "tkom interpreter\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."

	dumpTokens = flag.Bool("tokens", false, "dump the token stream instead of running")
	dumpAST    = flag.Bool("ast", false, "dump the parsed program instead of running")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %s [file]           Run a program from file, or from stdin when piped.
  %s                  Start the REPL (interactive stdin).
  %s -tokens [file]   Print the token stream.
  %s -ast [file]      Print the parsed program.
`, appName, appName, appName, appName)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	os.Exit(run(flag.Args()))
}

func run(args []string) int {
	if len(args) > 1 {
		usage()
		return 2
	}

	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
			return 2
		}
		defer f.Close()
		in = f
	}

	switch {
	case *dumpTokens:
		tkom.DumpTokens(in, os.Stdout)
		return 0
	case *dumpAST:
		code, err := tkom.Parse(in)
		if err != nil {
			errColor.Fprintln(os.Stdout, err.Error())
			return 1
		}
		fmt.Println(code.String())
		return 0
	case len(args) == 0 && isatty.IsTerminal(os.Stdin.Fd()):
		return repl()
	default:
		if err := tkom.NewProgram(in, os.Stdout).Run(); err != nil {
			errColor.Fprintln(os.Stdout, err.Error())
			return 1
		}
		return 0
	}
}

func repl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	global := tkom.NewGlobalScope(os.Stdout)

	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}

		block, err := tkom.ParseSource(code)
		if err != nil {
			errColor.Fprintln(os.Stderr, err.Error())
			continue
		}
		if err := tkom.ExecProtected(block, global); err != nil {
			errColor.Fprintln(os.Stderr, err.Error())
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement collects input lines until they form a complete statement:
// the interactive parser stops reporting an incomplete construct and, for
// block-opening statements, a blank line closes the entry (so multi-line
// bodies are not executed after their first statement).
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()

		if _, perr := tkom.ParseSourceInteractive(src); perr != nil && tkom.IsIncomplete(perr) {
			continue
		}
		if opensBlock(src) && strings.TrimSpace(line) != "" {
			continue
		}
		return src, true
	}
}

// opensBlock reports whether the entry's first significant line ends with a
// colon, i.e. starts an indented body.
func opensBlock(src string) bool {
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if i := strings.IndexByte(trimmed, '#'); i >= 0 {
			trimmed = strings.TrimSpace(trimmed[:i])
		}
		return strings.HasSuffix(trimmed, ":")
	}
	return false
}
