// Package doctor provides health checks for a typedsql project.
//
// The doctor command validates that the table document loads and that every
// declared table and column exists in the configured database.
//
// Example usage:
//
//	d := doctor.New(r, "schema.yaml")
//	report, err := d.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report.Print(os.Stdout, true) // verbose=true
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pthm/typedsql/pkg/runner"
	"github.com/pthm/typedsql/pkg/schema"
	"github.com/pthm/typedsql/pkg/sqldsl"
)

// Status represents the result of a health check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical issue that will cause failures.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns a status indicator symbol for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "⚠"
	case StatusFail:
		return "✗"
	default:
		return "?"
	}
}

// CheckResult represents the outcome of a single health check.
type CheckResult struct {
	// Category groups related checks (e.g., "Schema File", "Tables").
	Category string

	// Name is a short identifier for the check.
	Name string

	// Status is the check outcome.
	Status Status

	// Message is a human-readable description of the result.
	Message string

	// Details provides additional information for verbose output.
	Details string

	// FixHint suggests how to resolve issues.
	FixHint string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult

	// Summary counts.
	Passed   int
	Warnings int
	Errors   int
}

// AddCheck adds a check result and updates summary counts.
func (r *Report) AddCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case StatusPass:
		r.Passed++
	case StatusWarn:
		r.Warnings++
	case StatusFail:
		r.Errors++
	}
}

// Print writes the report to the given writer.
func (r *Report) Print(w io.Writer, verbose bool) {
	categories := make(map[string][]CheckResult)
	var categoryOrder []string
	for _, check := range r.Checks {
		if _, exists := categories[check.Category]; !exists {
			categoryOrder = append(categoryOrder, check.Category)
		}
		categories[check.Category] = append(categories[check.Category], check)
	}

	for _, cat := range categoryOrder {
		_, _ = fmt.Fprintf(w, "\n%s\n", cat)
		for _, check := range categories[cat] {
			_, _ = fmt.Fprintf(w, "  %s %s\n", check.Status.Symbol(), check.Message)
			if verbose && check.Details != "" {
				for _, line := range strings.Split(check.Details, "\n") {
					_, _ = fmt.Fprintf(w, "      %s\n", line)
				}
			}
			if check.Status != StatusPass && check.FixHint != "" {
				_, _ = fmt.Fprintf(w, "      Fix: %s\n", check.FixHint)
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\nSummary: %d passed, %d warnings, %d errors\n",
		r.Passed, r.Warnings, r.Errors)
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// Doctor checks a table document against a live database.
type Doctor struct {
	runner     *runner.Runner
	schemaPath string

	// Populated by checkSchemaFile.
	catalog *schema.Catalog
}

// New creates a new Doctor. A nil runner skips the database checks.
func New(r *runner.Runner, schemaPath string) *Doctor {
	return &Doctor{
		runner:     r,
		schemaPath: schemaPath,
	}
}

// Run executes all health checks and returns a report.
func (d *Doctor) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	d.checkSchemaFile(report)
	if d.catalog == nil {
		return report, nil
	}
	if d.runner == nil {
		report.AddCheck(CheckResult{
			Category: "Tables",
			Name:     "database",
			Status:   StatusWarn,
			Message:  "No database configured, table checks skipped",
			FixHint:  "Set database.url or pass --db",
		})
		return report, nil
	}
	if err := d.checkTables(ctx, report); err != nil {
		return nil, fmt.Errorf("checking tables: %w", err)
	}
	return report, nil
}

// checkSchemaFile validates the table document exists and loads.
func (d *Doctor) checkSchemaFile(report *Report) {
	if _, err := os.Stat(d.schemaPath); err != nil {
		report.AddCheck(CheckResult{
			Category: "Schema File",
			Name:     "exists",
			Status:   StatusFail,
			Message:  fmt.Sprintf("Schema file not found at %s", d.schemaPath),
			FixHint:  "Create a table document or set schema in typedsql.yaml",
		})
		return
	}

	report.AddCheck(CheckResult{
		Category: "Schema File",
		Name:     "exists",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Schema file exists at %s", d.schemaPath),
	})

	cat, err := schema.Load(d.schemaPath)
	if err != nil {
		report.AddCheck(CheckResult{
			Category: "Schema File",
			Name:     "valid",
			Status:   StatusFail,
			Message:  "Schema file is invalid",
			Details:  err.Error(),
			FixHint:  "Column types must be one of " + strings.Join(schema.Types, ", "),
		})
		return
	}
	d.catalog = cat

	columnCount := 0
	for _, t := range cat.Tables() {
		columnCount += len(t.Columns())
	}

	status := StatusPass
	if len(cat.Tables()) == 0 {
		status = StatusWarn
	}
	report.AddCheck(CheckResult{
		Category: "Schema File",
		Name:     "valid",
		Status:   status,
		Message:  fmt.Sprintf("Schema is valid (%d tables, %d columns)", len(cat.Tables()), columnCount),
	})
}

// checkTables probes every declared table with a zero-row select of all its
// declared columns.
func (d *Doctor) checkTables(ctx context.Context, report *Report) error {
	for _, t := range d.catalog.Tables() {
		exprs := make([]sqldsl.Expression, 0, len(t.Columns()))
		for _, c := range t.Columns() {
			exprs = append(exprs, c.Ref())
		}
		probe := sqldsl.SelectInto[sqldsl.Record](t.SQL(), exprs...).Limit(0)

		rows, err := d.runner.Query(ctx, probe)
		if err == nil {
			err = rows.Close()
		}

		switch {
		case err == nil:
			report.AddCheck(CheckResult{
				Category: "Tables",
				Name:     t.Name(),
				Status:   StatusPass,
				Message:  fmt.Sprintf("%s (%d columns)", t.Name(), len(t.Columns())),
			})
		case runner.IsUndefinedTableErr(err):
			report.AddCheck(CheckResult{
				Category: "Tables",
				Name:     t.Name(),
				Status:   StatusFail,
				Message:  fmt.Sprintf("Table %s does not exist", t.Name()),
				Details:  err.Error(),
				FixHint:  "Create the table or remove it from the schema file",
			})
		case errors.Is(err, runner.ErrUndefinedColumn):
			report.AddCheck(CheckResult{
				Category: "Tables",
				Name:     t.Name(),
				Status:   StatusFail,
				Message:  fmt.Sprintf("Table %s is missing a declared column", t.Name()),
				Details:  err.Error(),
				FixHint:  "Align the column list in the schema file with the database",
			})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			report.AddCheck(CheckResult{
				Category: "Tables",
				Name:     t.Name(),
				Status:   StatusFail,
				Message:  fmt.Sprintf("Probing %s failed", t.Name()),
				Details:  err.Error(),
			})
		}
	}
	return nil
}
