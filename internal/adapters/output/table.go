// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gokutrace/internal/core/domain"
)

// WriteTable imprime un resumen legible en texto plano, para terminales sin
// soporte de color o salida redirigida.
func WriteTable(out io.Writer, report *domain.Report, verbose bool) error {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)

	// Header con información de la corrida
	fmt.Fprintf(w, "\n=== GokuTrace %s results ===\n", report.Mode)
	fmt.Fprintf(w, "Seed:\t%s\n", report.Seed)
	fmt.Fprintf(w, "Run:\t%s\n", report.RunID)
	fmt.Fprintf(w, "Duration:\t%s\n", report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Variants:\t%d\n", report.Variants)
	fmt.Fprintf(w, "Tasks:\t%d/%d\n\n", report.Completed, report.Tasks)

	rs := report.Results
	switch {
	case report.Mode == domain.ModeGenerate:
		fmt.Fprintln(w, "VARIANT\tPLATFORM\tURL")
		fmt.Fprintln(w, "-------\t--------\t---")
		for _, v := range rs.Variants() {
			for _, u := range rs.Entries[v].URLs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", v, u.Platform, u.URL)
			}
		}
	case rs.TotalHits() > 0:
		fmt.Fprintln(w, "VARIANT\tPLATFORM\tURL\tSTATUS")
		fmt.Fprintln(w, "-------\t--------\t---\t------")
		for _, v := range rs.Variants() {
			for _, h := range rs.Entries[v].Hits {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v, h.Platform, h.Detail.URL, h.Detail.Status)
			}
		}
	default:
		fmt.Fprintln(w, "No profiles found.")
	}

	if verbose && report.Mode == domain.ModeScan && rs.TotalMisses() > 0 {
		fmt.Fprintln(w, "\nVARIANT\tMISSES")
		for _, v := range rs.Variants() {
			if misses := rs.Entries[v].Misses; len(misses) > 0 {
				fmt.Fprintf(w, "%s\t%d\n", v, len(misses))
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	// Warnings
	if len(report.Warnings) > 0 {
		fmt.Fprintf(out, "\n⚠️  Warnings (%d):\n", len(report.Warnings))
		for i, warning := range report.Warnings {
			fmt.Fprintf(out, "  %d. %s\n", i+1, warning)
		}
	}

	return nil
}
