// internal/adapters/output/csv.go
package output

import (
	"encoding/csv"
	"io"

	"gokutrace/internal/core/domain"
)

var (
	scanHeader     = []string{"Variation", "Platform", "URL", "Status"}
	generateHeader = []string{"Variation", "Platform", "URL"}
)

// WriteCSV escribe una fila por hit (modo scan) o por URL generada (modo
// generate). Las variantes salen en orden alfabético.
func WriteCSV(w io.Writer, rs domain.ResultSet) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	header := scanHeader
	if rs.Mode == domain.ModeGenerate {
		header = generateHeader
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, variant := range rs.Variants() {
		entry := rs.Entries[variant]
		if entry == nil {
			continue
		}
		if rs.Mode == domain.ModeGenerate {
			for _, u := range entry.URLs {
				if err := cw.Write([]string{variant, u.Platform, u.URL}); err != nil {
					return err
				}
			}
			continue
		}
		for _, h := range entry.Hits {
			if err := cw.Write([]string{variant, h.Platform, h.Detail.URL, h.Detail.Status}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
