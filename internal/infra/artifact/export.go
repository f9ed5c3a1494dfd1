package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const exportPrefix = "schedule_export_"

// ExportCSV writes the generated schedule table to a timestamped CSV file in
// dir, deleting any previous exports with the same prefix first. At most one
// export is retained. Returns the path written.
func ExportCSV(dir string, table [][]string) (string, error) {
	old, err := filepath.Glob(filepath.Join(dir, exportPrefix+"*.csv"))
	if err != nil {
		return "", fmt.Errorf("could not scan for previous exports: %w", err)
	}
	for _, path := range old {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("could not remove previous export %s: %w", path, err)
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("%s%s.csv", exportPrefix, time.Now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create export %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(table); err != nil {
		return "", fmt.Errorf("could not write export %s: %w", path, err)
	}
	return path, nil
}
