package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/goliatone/go-swagform/pkg/content"
	"github.com/goliatone/go-swagform/pkg/form"
	"github.com/goliatone/go-swagform/pkg/view"
)

func main() {
	source := flag.String("content", "content/swag.yaml", "content document path")
	output := flag.String("output", "", "output file (stdout if empty)")
	fill := flag.Bool("fill", false, "fill the form interactively and submit it")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), logger, *source, *output, *fill); err != nil {
		logger.Error("swagform failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, source, output string, fill bool) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read content document: %w", err)
	}

	doc, err := content.Decode(data)
	if err != nil {
		return err
	}
	logger.Debug("content document decoded", "fields", len(doc.Fields), "url", doc.SubmissionURL)

	if fill {
		return fillAndSubmit(ctx, logger, doc)
	}

	ctrl := form.New(doc, form.WithLogger(logger))
	page, err := view.Render(doc, ctrl.Snapshot())
	if err != nil {
		return err
	}

	html, err := page.HTML()
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("page written", "path", output)
		return nil
	}
	fmt.Println(html)
	return nil
}
