package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/models"
)

// LineFailure describes one input line that could not be processed.
type LineFailure struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// BulkSummary reports the outcome of a multi-message run. A failed line
// never aborts the run; it is counted and the run continues.
type BulkSummary struct {
	Total      int           `json:"total"`
	Processed  int           `json:"processed"`
	Duplicates int           `json:"duplicates"`
	Failed     int           `json:"failed"`
	Results    []*Result     `json:"-"`
	Failures   []LineFailure `json:"failures,omitempty"`
}

// ProcessLines runs each non-blank line through the pipeline. Line
// numbers are 1-based over the original input, blank lines included.
func (p *Pipeline) ProcessLines(ctx context.Context, lines []string, channel string) (*BulkSummary, error) {
	summary := &BulkSummary{}

	for i, line := range lines {
		// Only a dead context aborts the run; any per-line failure,
		// storage included, is counted and the run continues.
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("bulk processing aborted: %w", err)
		}

		lineNo := i + 1
		if len(line) == 0 || isBlank(line) {
			continue
		}
		summary.Total++

		meta := map[string]string{models.MetaLineNumber: strconv.Itoa(lineNo)}
		result, err := p.ProcessMessage(ctx, line, channel, meta)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, LineFailure{Line: lineNo, Reason: err.Error()})
			p.logger.WithError(err).WithField("line", lineNo).Warn("Skipping failed line")
			continue
		}

		summary.Processed++
		if result.Duplicate {
			summary.Duplicates++
		}
		summary.Results = append(summary.Results, result)
	}

	p.logger.WithFields(
		logging.Field{Key: "total", Value: summary.Total},
		logging.Field{Key: "processed", Value: summary.Processed},
		logging.Field{Key: "duplicates", Value: summary.Duplicates},
		logging.Field{Key: "failed", Value: summary.Failed},
	).Info("Bulk processing complete")

	return summary, nil
}

// ProcessFile reads a newline-delimited message file and processes each
// line.
func (p *Pipeline) ProcessFile(ctx context.Context, path, channel string) (*BulkSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open messages file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}

	return p.ProcessLines(ctx, lines, channel)
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
	}
	return true
}
