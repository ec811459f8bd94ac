// Package pipeline runs a word count from an input file to an HTML report.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"harshagw/wordcount/internal/analysis"
	"harshagw/wordcount/internal/report"
	"harshagw/wordcount/internal/source"
	"harshagw/wordcount/internal/tally"
)

var (
	ErrNoInputPath  = errors.New("no input file given")
	ErrNoOutputPath = errors.New("no output file given")
)

// openSource is replaced in tests.
var openSource = source.Open

// Options configures one run.
type Options struct {
	Input    string
	Output   string
	Reader   source.Kind
	Compress bool
	// Separators defaults to analysis.DefaultSeparators.
	Separators *analysis.Separators
}

// Result describes a finished run.
type Result struct {
	Input   string
	Output  string
	Stage   Stage
	Words   int
	Entries []tally.Entry
	// Compressed is set when the report was written as a snappy stream.
	Compressed bool
	// FailedAt is the last stage reached before a failure.
	FailedAt Stage
}

// Distinct returns the number of distinct words.
func (r *Result) Distinct() int { return len(r.Entries) }

type run struct {
	opts Options
	log  *zap.Logger
	res  *Result
}

func (r *run) advance(s Stage) {
	if r.res.Stage.Terminal() {
		r.log.Warn("stage change after run ended", zap.Stringer("from", r.res.Stage), zap.Stringer("to", s))
		return
	}
	r.log.Debug("stage", zap.Stringer("from", r.res.Stage), zap.Stringer("to", s), zap.Bool("terminal", s.Terminal()))
	r.res.Stage = s
}

func (r *run) fail() {
	r.res.FailedAt = r.res.Stage
	r.advance(StageFailed)
}

// Run counts the words of opts.Input and writes the report to opts.Output.
// Both files are closed before Run returns. The input is opened first, so a
// missing or unreadable input never creates the output file. A partially
// written output is left in place on failure.
func Run(opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Input == "" {
		return nil, ErrNoInputPath
	}
	if opts.Output == "" {
		return nil, ErrNoOutputPath
	}
	if opts.Separators == nil {
		opts.Separators = analysis.DefaultSeparators()
	}

	r := &run{
		opts: opts,
		log:  log.With(zap.String("input", opts.Input), zap.String("output", opts.Output)),
		res:  &Result{Input: opts.Input, Output: opts.Output, Stage: StageIdle},
	}

	if err := r.execute(); err != nil {
		r.fail()
		r.log.Debug("run failed", zap.Stringer("at", r.res.FailedAt), zap.Error(err))
		return r.res, err
	}

	r.advance(StageClosed)
	r.log.Info("words counted",
		zap.Int("words", r.res.Words),
		zap.Int("distinct", r.res.Distinct()),
		zap.Bool("compressed", r.res.Compressed),
	)
	return r.res, nil
}

func (r *run) execute() (err error) {
	in, err := openSource(r.opts.Input, r.opts.Reader)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close input %s: %w", r.opts.Input, cerr))
		}
	}()
	r.advance(StageInputOpen)

	out, err := report.Create(r.opts.Output, r.opts.Compress)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	r.res.Output = out.Path()
	r.res.Compressed = out.Compressed()

	words, err := analysis.Collect(in, r.opts.Separators)
	if err != nil {
		return err
	}
	r.res.Words = len(words)
	r.advance(StageCollected)

	tally.Sort(words)
	r.advance(StageSorted)

	r.res.Entries = tally.Collapse(words)
	if err := report.Render(out, r.opts.Input, r.res.Entries); err != nil {
		return err
	}
	r.advance(StageRendered)

	return nil
}
