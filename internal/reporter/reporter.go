package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/tidydir/internal/cleaner"
	"github.com/fenilsonani/tidydir/internal/fileops"
	"github.com/fenilsonani/tidydir/internal/organizer"
	"github.com/fenilsonani/tidydir/internal/scanner"
	"github.com/fenilsonani/tidydir/internal/ui/styles"
	uiutils "github.com/fenilsonani/tidydir/internal/ui/utils"
	"github.com/fenilsonani/tidydir/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ParseFormat validates a format name
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatTable, FormatJSON, FormatYAML, FormatSummary:
		return f, nil
	case "":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// RunReport gathers the results of one run. Passes that did not run are nil.
type RunReport struct {
	ID         string
	Root       string
	DryRun     bool
	Started    time.Time
	Finished   time.Time
	Organize   *organizer.Result
	Scan       *scanner.DuplicateResult
	Folders    *cleaner.Result
	Duplicates *cleaner.Result
}

// NewRunReport starts the report of a run over root
func NewRunReport(root string, dryRun bool) *RunReport {
	return &RunReport{
		ID:      uuid.NewString(),
		Root:    root,
		DryRun:  dryRun,
		Started: time.Now(),
	}
}

// Errors returns the errors of every pass in pass order
func (r *RunReport) Errors() []*fileops.OpError {
	var errs []*fileops.OpError
	if r.Organize != nil {
		errs = append(errs, r.Organize.Errors...)
	}
	if r.Folders != nil {
		errs = append(errs, r.Folders.Errors...)
	}
	if r.Scan != nil {
		errs = append(errs, r.Scan.Errors...)
	}
	if r.Duplicates != nil {
		errs = append(errs, r.Duplicates.Errors...)
	}
	return errs
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report writes the run report in the configured format
func (r *Reporter) Report(report *RunReport) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(report)
	case FormatJSON:
		return r.reportJSON(report)
	case FormatYAML:
		return r.reportYAML(report)
	case FormatSummary:
		return r.reportSummary(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(report *RunReport) error {
	title := "=== Tidy Summary ==="
	if report.DryRun {
		title = "=== Tidy Summary (dry run) ==="
	}
	fmt.Fprintln(r.writer, styles.TitleStyle.Render(title))
	fmt.Fprintf(r.writer, "Directory: %s\n", styles.FilePathStyle.Render(report.Root))

	if res := report.Organize; res != nil {
		fmt.Fprintf(r.writer, "\nFiles moved: %d (of %d scanned, %d already in place)\n",
			len(res.Moves), res.Scanned, res.InPlace)
		counts := res.CategoryCounts()
		for _, name := range res.Categories() {
			fmt.Fprintf(r.writer, "  %s %d files\n", styles.CategoryStyle.Render(name+":"), counts[name])
		}
	}

	if res := report.Folders; res != nil {
		fmt.Fprintf(r.writer, "\nEmpty folders: %d found, %d deleted\n", res.Found, len(res.Deleted))
	}

	if res := report.Duplicates; res != nil {
		hashed := 0
		var duplicated int64
		if report.Scan != nil {
			hashed = report.Scan.FilesHashed
			duplicated = report.Scan.TotalSize()
		}
		fmt.Fprintf(r.writer, "\nDuplicates: %d found among %d files (%s duplicated), %d deleted, %s reclaimed\n",
			res.Found, hashed, utils.FormatBytes(duplicated), len(res.Deleted),
			styles.FileSizeStyle.Render(utils.FormatBytes(res.DeletedSize)))
	}

	if errs := report.Errors(); len(errs) > 0 {
		fmt.Fprint(r.writer, styles.WarningStyle.Render(fileops.FormatErrorSummary(errs)))
		fmt.Fprintln(r.writer)
	}

	if !report.Finished.IsZero() && !report.Started.IsZero() {
		fmt.Fprintf(r.writer, "\n%s\n", styles.DimStyle.Render("Took "+report.Finished.Sub(report.Started).Round(time.Millisecond).String()))
	}

	return nil
}

// reportTable generates a table report
func (r *Reporter) reportTable(report *RunReport) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Action", "Path", "Target", "Category"})

	if report.Organize != nil {
		for _, m := range report.Organize.Moves {
			tw.AppendRow(table.Row{
				"move",
				uiutils.TruncatePath(m.Source, 45),
				uiutils.TruncatePath(m.Destination, 45),
				m.Category,
			})
		}
	}

	for _, res := range []*cleaner.Result{report.Folders, report.Duplicates} {
		if res == nil {
			continue
		}
		for _, d := range res.Deleted {
			target := "-"
			if d.Original != "" {
				target = "kept " + d.Original
			}
			tw.AppendRow(table.Row{
				"delete",
				uiutils.TruncatePath(d.Path, 45),
				uiutils.TruncatePath(target, 45),
				d.Kind.String(),
			})
		}
	}

	fmt.Fprintln(r.writer, tw.Render())
	moves, deletions, size := report.totals()
	fmt.Fprintf(r.writer, "Total: %d moves, %d deletions, %s reclaimed\n", moves, deletions, utils.FormatBytes(size))

	return nil
}

func (r *RunReport) totals() (moves, deletions int, size int64) {
	if r.Organize != nil {
		moves = len(r.Organize.Moves)
	}
	var sizes []int64
	for _, res := range []*cleaner.Result{r.Folders, r.Duplicates} {
		if res != nil {
			deletions += len(res.Deleted)
			sizes = append(sizes, res.DeletedSize)
		}
	}
	return moves, deletions, utils.SumSizes(sizes)
}

type moveRecord struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Category    string `json:"category" yaml:"category"`
}

type deletionRecord struct {
	Kind     string `json:"kind" yaml:"kind"`
	Path     string `json:"path" yaml:"path"`
	Original string `json:"original,omitempty" yaml:"original,omitempty"`
	Size     int64  `json:"size" yaml:"size"`
}

type errorRecord struct {
	Op     string `json:"op" yaml:"op"`
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

type document struct {
	RunID              string           `json:"run_id" yaml:"run_id"`
	Timestamp          string           `json:"timestamp" yaml:"timestamp"`
	Directory          string           `json:"directory" yaml:"directory"`
	DryRun             bool             `json:"dry_run" yaml:"dry_run"`
	Moves              []moveRecord     `json:"moves" yaml:"moves"`
	Deletions          []deletionRecord `json:"deletions" yaml:"deletions"`
	ReclaimedSize      int64            `json:"reclaimed_size" yaml:"reclaimed_size"`
	ReclaimedFormatted string           `json:"reclaimed_size_formatted" yaml:"reclaimed_size_formatted"`
	Errors             []errorRecord    `json:"errors" yaml:"errors"`
}

func (r *RunReport) document() document {
	doc := document{
		RunID:     r.ID,
		Timestamp: time.Now().Format(time.RFC3339),
		Directory: r.Root,
		DryRun:    r.DryRun,
		Moves:     []moveRecord{},
		Deletions: []deletionRecord{},
		Errors:    []errorRecord{},
	}
	if !r.Finished.IsZero() {
		doc.Timestamp = r.Finished.Format(time.RFC3339)
	}

	if r.Organize != nil {
		for _, m := range r.Organize.Moves {
			doc.Moves = append(doc.Moves, moveRecord{Source: m.Source, Destination: m.Destination, Category: m.Category})
		}
	}
	for _, res := range []*cleaner.Result{r.Folders, r.Duplicates} {
		if res == nil {
			continue
		}
		for _, d := range res.Deleted {
			doc.Deletions = append(doc.Deletions, deletionRecord{Kind: d.Kind.String(), Path: d.Path, Original: d.Original, Size: d.Size})
		}
	}
	for _, e := range r.Errors() {
		doc.Errors = append(doc.Errors, errorRecord{Op: string(e.Op), Path: e.Path, Reason: e.Reason.String()})
	}

	_, _, doc.ReclaimedSize = r.totals()
	doc.ReclaimedFormatted = utils.FormatBytes(doc.ReclaimedSize)
	return doc
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(report *RunReport) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report.document())
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(report *RunReport) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(report.document())
}

// SaveToFile saves the report to a file
func SaveToFile(report *RunReport, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return New(file, format).Report(report)
}
