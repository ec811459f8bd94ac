package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/c-bata/go-prompt/completer"

	"harshagw/wordcount/internal/analysis"
	"harshagw/wordcount/internal/config"
	"harshagw/wordcount/internal/pipeline"
	"harshagw/wordcount/internal/tally"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
)

type options struct {
	configPath  string
	input       string
	output      string
	compress    bool
	mmap        bool
	interactive bool
	showVersion bool
}

func parseFlags(args []string) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("wordcount", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.input, "in", "", "Input text file (prompted for when omitted)")
	fs.StringVar(&opts.output, "out", "", "Output HTML file (prompted for when omitted)")
	fs.BoolVar(&opts.compress, "z", false, "Write the output as a snappy framed stream")
	fs.BoolVar(&opts.mmap, "mmap", false, "Read the input through a memory mapping")
	fs.BoolVar(&opts.interactive, "i", false, "Look up counts interactively after writing the report")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "wordcount - count the words of a text file into an HTML table\n\n")
		fmt.Fprintf(fs.Output(), "Usage:\n  wordcount [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nEnvironment:\n  %s_INPUT, %s_OUTPUT, %s_READER, %s_COMPRESS, %s_LOG_LEVEL, %s_LOG_FORMAT\n",
			config.DefaultEnvPrefix, config.DefaultEnvPrefix, config.DefaultEnvPrefix,
			config.DefaultEnvPrefix, config.DefaultEnvPrefix, config.DefaultEnvPrefix)
		fmt.Fprintf(fs.Output(), "\nWords are split on any of %q\n", string(analysis.DefaultSeparators().Runes()))
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs, nil
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cfg *config.Config, opts *options, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Input = opts.input
		case "out":
			cfg.Output = opts.output
		case "z":
			cfg.Compress = opts.compress
		case "mmap":
			if opts.mmap {
				cfg.Reader = "mmap"
			} else {
				cfg.Reader = "buffered"
			}
		}
	})
}

func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice != 0
}

// askPath prompts for a file path with file name completion.
func askPath(question string) string {
	fmt.Println(question)
	fc := completer.FilePathCompleter{IgnoreCase: true}
	return strings.TrimSpace(prompt.Input("> ", fc.Complete,
		prompt.OptionTitle("wordcount"),
		prompt.OptionCompletionWordSeparator(completer.FilePathCompletionSeparator),
	))
}

func resolvePaths(cfg *config.Config) error {
	if cfg.Input != "" && cfg.Output != "" {
		return nil
	}
	if !isTerminal() {
		if cfg.Input == "" {
			return pipeline.ErrNoInputPath
		}
		return pipeline.ErrNoOutputPath
	}
	if cfg.Input == "" {
		cfg.Input = askPath("Please enter the name of a valid input file")
	}
	if cfg.Output == "" {
		cfg.Output = askPath("Please enter the name of a valid output file")
	}
	return nil
}

// run executes one wordcount invocation. lookupEnv resolves configuration
// environment variables.
func run(args []string, lookupEnv func(string) (string, bool)) error {
	opts, fs, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Printf("wordcount %s (commit: %s)\n", version, commit)
		return nil
	}

	cfg, err := config.NewLoader().
		WithConfigPath(opts.configPath).
		WithEnvPrefix(config.DefaultEnvPrefix).
		WithLookupEnv(lookupEnv).
		Load()
	if err != nil {
		return err
	}
	applyFlags(cfg, opts, fs)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	if err := resolvePaths(cfg); err != nil {
		return err
	}

	res, err := pipeline.Run(pipeline.Options{
		Input:    cfg.Input,
		Output:   cfg.Output,
		Reader:   cfg.ReaderKind(),
		Compress: cfg.Compress,
	}, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d words (%d distinct) to %s\n", res.Words, res.Distinct(), res.Output)

	if !opts.interactive {
		return nil
	}
	if !isTerminal() {
		logger.Warn("interactive mode needs a terminal; skipping")
		return nil
	}

	dict, err := tally.NewDictionary(res.Entries)
	if err != nil {
		return err
	}
	newREPL(dict, res, logger).Run()
	return nil
}

func main() {
	if err := run(os.Args[1:], os.LookupEnv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
