package simulation

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteProjectionCSV writes the monthly projection rows to a CSV file.
func WriteProjectionCSV(path string, rows []ProjectionRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"month", "p10", "median", "p90", "stress_probability"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Month),
			fmtFloat(r.P10),
			fmtFloat(r.Median),
			fmtFloat(r.P90),
			fmtFloat(r.StressProbability),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
