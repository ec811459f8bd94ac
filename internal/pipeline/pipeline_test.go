package pipeline

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"harshagw/wordcount/internal/source"
	"harshagw/wordcount/internal/tally"
)

func setup(t *testing.T, content string) (input, output string) {
	t.Helper()
	dir := t.TempDir()
	input = filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))
	return input, filepath.Join(dir, "output.html")
}

func TestRun_RoundTrip(t *testing.T) {
	for _, kind := range []source.Kind{source.KindBuffered, source.KindMapped} {
		t.Run(string(kind), func(t *testing.T) {
			input, output := setup(t, "the quick, brown fox.\nthe Fox jumps.\n")

			res, err := Run(Options{Input: input, Output: output, Reader: kind}, zap.NewNop())
			require.NoError(t, err)

			assert.Equal(t, StageClosed, res.Stage)
			assert.Equal(t, 7, res.Words)
			assert.Equal(t, 6, res.Distinct())
			assert.Equal(t, []tally.Entry{
				{Word: "brown", Count: 1}, {Word: "Fox", Count: 1}, {Word: "fox", Count: 1}, {Word: "jumps", Count: 1}, {Word: "quick", Count: 1}, {Word: "the", Count: 2},
			}, res.Entries)

			data, err := os.ReadFile(output)
			require.NoError(t, err)
			html := string(data)

			assert.Contains(t, html, "<title>Words Counted in "+input+"</title>")
			assert.Contains(t, html, "<h2>Words Counted in "+input+"</h2>")
			assert.Contains(t, html, "<tr>\n<td>the</td>\n<td>2</td>\n</tr>\n")
			assert.Less(t, strings.Index(html, "<td>Fox</td>"), strings.Index(html, "<td>fox</td>"))
			assert.True(t, strings.HasSuffix(html, "</table>\n</body>\n</html>\n"))
		})
	}
}

func TestRun_EmptyInput(t *testing.T) {
	input, output := setup(t, "")

	res, err := Run(Options{Input: input, Output: output}, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Words)
	assert.Empty(t, res.Entries)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "<tr>"))
	assert.NotContains(t, string(data), "<td>")
}

func TestRun_SeparatorOnlyInput(t *testing.T) {
	input, output := setup(t, "   ,,,\n")

	res, err := Run(Options{Input: input, Output: output, Reader: source.KindMapped}, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Words)
	assert.Empty(t, res.Entries)
}

func TestRun_CountConservation(t *testing.T) {
	input, output := setup(t, "a b a\nB b, c!\n\nA\n")

	res, err := Run(Options{Input: input, Output: output}, nil)
	require.NoError(t, err)
	assert.Equal(t, res.Words, tally.Total(res.Entries))
	assert.Equal(t, []tally.Entry{{Word: "A", Count: 1}, {Word: "a", Count: 2}, {Word: "B", Count: 1}, {Word: "b", Count: 2}, {Word: "c", Count: 1}}, res.Entries)
}

func TestRun_MissingInputCreatesNoOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.html")

	res, err := Run(Options{Input: filepath.Join(dir, "missing.txt"), Output: output}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, StageFailed, res.Stage)
	assert.Equal(t, StageIdle, res.FailedAt)

	_, statErr := os.Stat(output)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRun_UnwritableOutput(t *testing.T) {
	input, _ := setup(t, "hello\n")
	output := filepath.Join(t.TempDir(), "no", "such", "dir", "out.html")

	res, err := Run(Options{Input: input, Output: output, Reader: source.KindMapped}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, StageInputOpen, res.FailedAt)
}

func TestRun_DirectoryInputCreatesNoOutput(t *testing.T) {
	for _, kind := range []source.Kind{source.KindBuffered, source.KindMapped} {
		t.Run(string(kind), func(t *testing.T) {
			dir := t.TempDir()
			output := filepath.Join(dir, "out.html")

			res, err := Run(Options{Input: dir, Output: output, Reader: kind}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "is a directory")
			assert.Equal(t, StageIdle, res.FailedAt)

			_, statErr := os.Stat(output)
			assert.ErrorIs(t, statErr, os.ErrNotExist)
		})
	}
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestRun_ReadErrorKeepsPartialOutput(t *testing.T) {
	boom := errors.New("device went away")
	orig := openSource
	openSource = func(string, source.Kind) (source.LineSource, error) {
		return source.NewBuffered(&failingReader{data: "some words\nmore", err: boom}), nil
	}
	t.Cleanup(func() { openSource = orig })

	input, output := setup(t, "unused\n")
	res, err := Run(Options{Input: input, Output: output}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StageFailed, res.Stage)
	assert.Equal(t, StageInputOpen, res.FailedAt)

	_, statErr := os.Stat(output)
	assert.NoError(t, statErr)
}

func TestRun_MissingPaths(t *testing.T) {
	_, err := Run(Options{Output: "x.html"}, nil)
	assert.ErrorIs(t, err, ErrNoInputPath)

	_, err = Run(Options{Input: "x.txt"}, nil)
	assert.ErrorIs(t, err, ErrNoOutputPath)
}

func TestRun_Compressed(t *testing.T) {
	input, output := setup(t, "one two two\n")

	res, err := Run(Options{Input: input, Output: output, Compress: true}, nil)
	require.NoError(t, err)
	assert.True(t, res.Compressed)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(snappy.NewReader(f))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<td>two</td>\n<td>2</td>")
}

func TestRun_LogsStages(t *testing.T) {
	input, output := setup(t, "x y\n")
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := Run(Options{Input: input, Output: output}, zap.New(core))
	require.NoError(t, err)

	var stages []string
	for _, entry := range logs.FilterMessage("stage").All() {
		stages = append(stages, entry.ContextMap()["to"].(string))
	}
	assert.Equal(t, []string{"input-open", "collected", "sorted", "rendered", "closed"}, stages)

	summary := logs.FilterMessage("words counted").All()
	require.Len(t, summary, 1)
	assert.EqualValues(t, 2, summary[0].ContextMap()["words"])
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "idle", StageIdle.String())
	assert.Equal(t, "failed", StageFailed.String())
	assert.Equal(t, "unknown", Stage(99).String())
	assert.True(t, StageClosed.Terminal())
	assert.False(t, StageSorted.Terminal())
}

func TestAdvance_IgnoredAfterTerminalStage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := &run{log: zap.New(core), res: &Result{Stage: StageClosed}}

	r.advance(StageCollected)
	assert.Equal(t, StageClosed, r.res.Stage)
	assert.Equal(t, 1, logs.FilterMessage("stage change after run ended").Len())
}
