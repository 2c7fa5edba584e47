// ABOUTME: Batch mode: generates prompts for every entry of an M3U8-style list
// ABOUTME: Entries are analysis JSON files or audio files, processed concurrently on the worker pool

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"phonk-prompter/analysis"
	"phonk-prompter/pool"
	"phonk-prompter/prompt"
)

// RunBatch executes batch mode
func RunBatch(opts RunOptions) error {
	entries, err := analysis.ReadList(opts.InputPath)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("list is empty: %s", opts.InputPath)
	}

	fmt.Printf("Generating prompts for %d entries...\n", len(entries))

	engine := newEngine(opts.Config)
	progress := newProgressTracker(os.Stdout, len(entries), isTTY(os.Stdout))

	rows := generateBatch(engine, entries, opts.Request, opts.Config.BatchWorkers, analysis.Load, progress)

	progress.close()

	for _, row := range rows {
		if row.Err != nil {
			log.Printf("Warning: skipping %s: %v", row.Source, row.Err)
		}
	}

	fmt.Println()

	if err := writeBatchTable(os.Stdout, rows); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	done, failed := progress.counts()
	fmt.Printf("\n%d prompts generated, %d skipped\n", done-failed, failed)

	if failed == done {
		return errNoPrompts
	}

	if opts.OutputPath != "" {
		if err := writeFile(opts.OutputPath, batchOutput(rows)); err != nil {
			return err
		}

		fmt.Printf("Wrote prompts to: %s\n", opts.OutputPath)
	}

	return nil
}

// generateBatch loads and generates every entry on a worker pool.
// Rows come back in input order regardless of completion order.
func generateBatch(
	engine *prompt.Engine,
	entries []string,
	request string,
	workers int,
	load func(string) (*analysis.Result, error),
	progress *progressTracker,
) []batchRow {
	rows := make([]batchRow, len(entries))

	p := pool.NewWorkerPool(workers, len(entries))
	defer p.Close()

	debugf("[BATCH] %d entries on %d workers", len(entries), p.Workers())

	for i, entry := range entries {
		p.Submit(func() {
			row := batchRow{Source: entry}

			row.Result, row.Err = load(entry)
			if row.Err == nil {
				row.Prompt = engine.Generate(*row.Result, request)
			}

			rows[i] = row

			if progress != nil {
				progress.finish(row.Err)
			}
		})
	}

	p.Wait()

	return rows
}

// batchOutput formats successful rows as "source<TAB>prompt" lines
func batchOutput(rows []batchRow) string {
	var b strings.Builder

	for _, row := range rows {
		if row.Err == nil {
			fmt.Fprintf(&b, "%s\t%s\n", row.Source, row.Prompt)
		}
	}

	return b.String()
}
