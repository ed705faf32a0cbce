// Command bench measures listing throughput of the persistent adapters.
//
// For each adapter it writes -count notes through the use cases, then times
// a cold list (fresh App) and a warm list (same App, fs cache populated).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/quicknotes"
	"github.com/aretw0/quicknotes/pkg/core"
)

type result struct {
	adapter string
	write   time.Duration
	cold    time.Duration
	warm    time.Duration
	items   int
}

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark stores after running")
	verbose := flag.Bool("v", false, "Log store activity")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "quicknotes_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.DiscardHandler)
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx := context.Background()
	var results []result
	for _, adapter := range []string{quicknotes.AdapterFS, quicknotes.AdapterSQLite} {
		path := filepath.Join(benchDir, adapter)
		if adapter == quicknotes.AdapterSQLite {
			path = filepath.Join(benchDir, "bench.db")
		}
		r, err := run(ctx, adapter, path, *count, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", adapter, err)
			os.Exit(1)
		}
		results = append(results, r)
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	for _, r := range results {
		fmt.Printf("  %-7s write: %-14v cold list: %-14v warm list: %-14v items: %d\n", r.adapter, r.write, r.cold, r.warm, r.items)
	}
	fmt.Printf("--------------------------------------------------\n")
}

func run(ctx context.Context, adapter, path string, count int, logger *slog.Logger) (result, error) {
	r := result{adapter: adapter}
	opts := []quicknotes.Option{
		quicknotes.WithAdapter(adapter),
		quicknotes.WithPath(path),
		quicknotes.WithSeed(false),
		quicknotes.WithLogger(logger),
	}

	// 1. Generate
	app, err := quicknotes.New(ctx, opts...)
	if err != nil {
		return r, err
	}
	category, err := app.AddCategory.Execute(ctx, core.NewCategory("Bench", "gauge", "EF4444"))
	if err != nil {
		return r, err
	}
	start := time.Now()
	for i := range count {
		categoryID := ""
		if i%2 == 0 {
			categoryID = category.ID
		}
		n := core.NewNote(fmt.Sprintf("Note %d", i), "This is a benchmark note.", categoryID)
		if _, err := app.SaveNote.Execute(ctx, n); err != nil {
			return r, err
		}
	}
	r.write = time.Since(start)
	if err := app.Close(); err != nil {
		return r, err
	}

	// 2. Cold: a new App, as a new CLI invocation would see it
	app, err = quicknotes.New(ctx, opts...)
	if err != nil {
		return r, err
	}
	defer app.Close()

	start = time.Now()
	notes, err := app.GetNotes.Execute(ctx)
	if err != nil {
		return r, err
	}
	r.cold = time.Since(start)

	// 3. Warm
	start = time.Now()
	notes, err = app.GetNotes.Execute(ctx)
	if err != nil {
		return r, err
	}
	r.warm = time.Since(start)
	r.items = len(notes)
	return r, nil
}
