package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bormex/bormex/internal/model"
	"github.com/bormex/bormex/internal/pipeline"
)

// ParseJob parses a single bulletin entry on the pool.
type ParseJob struct {
	Entry  model.Entry
	Parser *pipeline.Parser
}

// ParseOutcome carries the result of one ParseJob.
type ParseOutcome struct {
	EntryID string
	Result  *pipeline.Result
	Err     error
}

// GetError implements Result.
func (o *ParseOutcome) GetError() error {
	return o.Err
}

// Execute implements Job.
func (j *ParseJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ParseOutcome{EntryID: j.Entry.ID, Err: err}
	}
	return &ParseOutcome{EntryID: j.Entry.ID, Result: j.Parser.Parse(j.Entry)}
}

// BatchProcessor parses many entries concurrently.
type BatchProcessor struct {
	parser      *pipeline.Parser
	concurrency int
	log         *logrus.Logger
}

// NewBatchProcessor creates a processor using the given parser and
// worker count.
func NewBatchProcessor(parser *pipeline.Parser, concurrency int, log *logrus.Logger) *BatchProcessor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BatchProcessor{
		parser:      parser,
		concurrency: concurrency,
		log:         log,
	}
}

// ProcessEntries parses all entries and returns one outcome per entry.
// Order follows completion, not submission.
func (b *BatchProcessor) ProcessEntries(ctx context.Context, entries []model.Entry) []*ParseOutcome {
	pool := NewPool(b.concurrency)
	pool.Start()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	start := time.Now()
	for _, e := range entries {
		pool.Submit(&ParseJob{Entry: e, Parser: b.parser})
	}

	results := pool.Wait()
	outcomes := make([]*ParseOutcome, 0, len(results))
	failed := 0
	for _, r := range results {
		o := r.(*ParseOutcome)
		if o.Err != nil {
			failed++
		}
		outcomes = append(outcomes, o)
	}

	b.log.WithFields(logrus.Fields{
		"entries": len(entries),
		"failed":  failed,
		"took":    time.Since(start).Round(time.Millisecond),
	}).Info("Batch parse complete")
	return outcomes
}

// ProcessFile reads a batch file and parses every entry in it.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*ParseOutcome, error) {
	entries, err := ReadEntriesFromFile(path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries found in %s", path)
	}
	return b.ProcessEntries(ctx, entries), nil
}

// ReadEntriesFromFile reads one raw bulletin entry per line. Blank
// lines and lines starting with # are skipped; duplicate texts are
// parsed once.
func ReadEntriesFromFile(path string) ([]model.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	var entries []model.Entry
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if seen[text] {
			continue
		}
		seen[text] = true
		entries = append(entries, model.Entry{
			ID:     fmt.Sprintf("%s:%d", path, line),
			Source: path,
			Text:   text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return entries, nil
}
