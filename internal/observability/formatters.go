// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/usermerge/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMergeSummary outputs a human-readable summary of a completed run.
func (p *Printer) PrintMergeSummary(result *pipeline.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Run:        %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Output:     %s\n", filepath.Base(result.OutputPath)))
	sb.WriteString(fmt.Sprintf("Read:       %d records\n", result.RecordsRead))
	sb.WriteString(fmt.Sprintf("Unique:     %d users\n", result.UniqueRecords))
	sb.WriteString(fmt.Sprintf("Duplicates: %d\n", result.Duplicates()))
	sb.WriteString("\n")

	if len(result.Sources) > 0 {
		sb.WriteString("Sources:\n")
		count := min(len(result.Sources), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", filepath.Base(result.Sources[i])))
		}
		if len(result.Sources) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Sources)-maxItemsToShow))
		}
	}

	if len(result.Skipped) > 0 {
		sb.WriteString("Skipped:\n")
		for _, s := range result.Skipped {
			sb.WriteString(fmt.Sprintf("  • %s\n", filepath.Base(s.Path)))
		}
	}

	p.printBox("USER LIST MERGED", strings.TrimSuffix(sb.String(), "\n"))
}
