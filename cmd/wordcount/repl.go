package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"go.uber.org/zap"

	"harshagw/wordcount/internal/pipeline"
	"harshagw/wordcount/internal/tally"
)

const defaultTop = 10

type REPL struct {
	dict *tally.Dictionary
	res  *pipeline.Result
	log  *zap.Logger
	out  io.Writer
	done bool
}

func newREPL(dict *tally.Dictionary, res *pipeline.Result, log *zap.Logger) *REPL {
	return &REPL{dict: dict, res: res, log: log, out: os.Stdout}
}

var commands = []prompt.Suggest{
	{Text: "count", Description: "Show how often a word occurs"},
	{Text: "prefix", Description: "List words starting with a prefix"},
	{Text: "top", Description: "List the most frequent words"},
	{Text: "stats", Description: "Show totals"},
	{Text: "help", Description: "Show help"},
	{Text: "quit", Description: "Exit"},
}

// Run reads commands until quit or EOF.
func (r *REPL) Run() {
	fmt.Fprintln(r.out)
	r.printHelp()
	fmt.Fprintln(r.out)

	p := prompt.New(
		r.executor,
		r.completer,
		prompt.OptionPrefix("wordcount >> "),
		prompt.OptionTitle("wordcount"),
		prompt.OptionSetExitCheckerOnInput(func(string, bool) bool { return r.done }),
	)
	p.Run()
}

func (r *REPL) completer(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}
	return prompt.FilterHasPrefix(commands, d.GetWordBeforeCursor(), true)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "Commands:")
	fmt.Fprintln(r.out, "  count <word>    - Occurrences of a word (case-sensitive)")
	fmt.Fprintln(r.out, "  prefix <p>      - Words starting with p, with counts")
	fmt.Fprintln(r.out, "  top [n]         - The n most frequent words (default 10)")
	fmt.Fprintln(r.out, "  stats           - Total and distinct word counts")
	fmt.Fprintln(r.out, "  help            - Show this help")
	fmt.Fprintln(r.out, "  quit            - Exit")
}

func (r *REPL) executor(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "count":
		r.cmdCount(parts[1:])
	case "prefix":
		r.cmdPrefix(parts[1:])
	case "top":
		r.cmdTop(parts[1:])
	case "stats":
		r.cmdStats()
	case "help":
		r.printHelp()
	case "quit", "exit":
		fmt.Fprintln(r.out, "Goodbye!")
		r.done = true
	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n", cmd)
	}
}

func (r *REPL) cmdCount(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Usage: count <word>")
		return
	}

	n, ok, err := r.dict.Count(args[0])
	if err != nil {
		r.log.Error("lookup failed", zap.String("word", args[0]), zap.Error(err))
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if !ok {
		fmt.Fprintf(r.out, "'%s' does not occur\n", args[0])
		return
	}
	fmt.Fprintf(r.out, "'%s' occurs %d times\n", args[0], n)
}

func (r *REPL) cmdPrefix(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Usage: prefix <p>")
		return
	}

	entries, err := r.dict.Prefix(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintf(r.out, "No words start with '%s'\n", args[0])
		return
	}
	r.printEntries(entries)
}

func (r *REPL) cmdTop(args []string) {
	n := defaultTop
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			fmt.Fprintln(r.out, "Usage: top [n]")
			return
		}
		n = v
	}
	r.printEntries(tally.Top(r.res.Entries, n))
}

func (r *REPL) cmdStats() {
	fmt.Fprintf(r.out, "Input:    %s\n", r.res.Input)
	fmt.Fprintf(r.out, "Output:   %s\n", r.res.Output)
	fmt.Fprintf(r.out, "Snappy:   %t\n", r.res.Compressed)
	fmt.Fprintf(r.out, "Words:    %d\n", r.dict.Total())
	fmt.Fprintf(r.out, "Distinct: %d\n", r.dict.Len())
}

func (r *REPL) printEntries(entries []tally.Entry) {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Word))
	}
	for _, e := range entries {
		fmt.Fprintf(r.out, "  %-*s %d\n", width, e.Word, e.Count)
	}
}
