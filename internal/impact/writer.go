package impact

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// csvHeader is the boundary schema other subsystems depend on; renaming
// or reordering these columns breaks every downstream consumer.
var csvHeader = []string{"policy", "year", "pollutant", "ate", "p_value_ate", "p_value_placebo"}

// WriteCSV serializes the table. Numeric values are rounded to four
// decimals; nulls are written as empty cells.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write impact header: %w", err)
	}
	for _, rec := range t.Records {
		row := []string{
			rec.Policy,
			fmt.Sprintf("%d", rec.Year),
			rec.Pollutant,
			csvCell(rec.ATE),
			csvCell(rec.PValueATE),
			csvCell(rec.PValuePlacebo),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write impact row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to path atomically enough for a batch
// boundary artifact: the file is only created after the run completed.
func WriteCSVFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create impact file: %w", err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func csvCell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4f", *v)
}
