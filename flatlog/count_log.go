package flatlog

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// countLogHeader matches the legacy ledger layout column for column.
var countLogHeader = []string{"ts", "zone_id", "label", "current", "peak"}

// CSVCountLog implements CountLog on a single delimited-text file opened,
// appended, and closed per write.
type CSVCountLog struct {
	path string
}

// NewCSVCountLog creates a count ledger at the given path, ensuring the
// parent directory exists. The file itself is not created until the first
// append so the header-once rule keys off its existence.
func NewCSVCountLog(path string) (*CSVCountLog, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid count log path '%s': %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create count log directory for '%s': %w", absPath, err)
	}
	log.Printf("flatlog: count ledger at %s", absPath)
	return &CSVCountLog{path: absPath}, nil
}

// Append writes one CSV row per submitted sample, emitting the header first
// when the file does not exist yet.
func (cl *CSVCountLog) Append(rows []CountRow) error {
	writeHeader := false
	if _, err := os.Stat(cl.path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(cl.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open count log '%s': %w", cl.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(countLogHeader); err != nil {
			return fmt.Errorf("failed to write count log header: %w", err)
		}
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatFloat(row.TS, 'f', -1, 64),
			row.ZoneID,
			row.Label,
			strconv.Itoa(row.Current),
			strconv.Itoa(row.Peak),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to append count row for zone %s: %w", row.ZoneID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush count log '%s': %w", cl.path, err)
	}
	return nil
}

func (cl *CSVCountLog) ReadRaw() ([]byte, error) {
	return os.ReadFile(cl.path)
}
