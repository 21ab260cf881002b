package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bormex/bormex/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Parse many entries from a file in parallel",
	Long: `Batch reads raw entries from a file (one per line, # for comments) and
parses them concurrently. Each result is written as JSON into the
output directory, named after the input line number.

Example:
  bormex batch entries.txt
  bormex batch entries.txt --concurrency 8 --output-dir ./results`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "worker count (default: config parse_workers)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./bormex-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	parser, err := buildParser(cfg)
	if err != nil {
		return err
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency.ParseWorkers
	}

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(parser, concurrency, log)
	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	success, failed := 0, 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", o.EntryID, o.Err)
			continue
		}
		success++

		path := filepath.Join(batchOutputDir, outcomeFilename(o.EntryID))
		data, err := json.MarshalIndent(o.Result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: marshal: %v\n", o.EntryID, err)
			continue
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write: %v\n", o.EntryID, err)
			continue
		}
	}

	fmt.Fprintf(os.Stderr, "parsed %d entries (%d failed), results in %s\n",
		success, failed, batchOutputDir)
	return nil
}

// outcomeFilename turns "path/to/file.txt:12" into "file.txt-12.json".
func outcomeFilename(entryID string) string {
	name := filepath.Base(entryID)
	name = strings.ReplaceAll(name, ":", "-")
	return name + ".json"
}
