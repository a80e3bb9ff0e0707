package flatlog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// JSONZoneFile implements ZoneStore on a single JSON file. Last write wins,
// globally: the file holds whichever zone list was saved most recently,
// independent of video identity and of relational availability.
type JSONZoneFile struct {
	path string
}

// NewJSONZoneFile creates a zone store at the given path, ensuring the parent
// directory exists.
func NewJSONZoneFile(path string) (*JSONZoneFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid zone file path '%s': %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create zone file directory for '%s': %w", absPath, err)
	}
	log.Printf("flatlog: zone file at %s", absPath)
	return &JSONZoneFile{path: absPath}, nil
}

func (zf *JSONZoneFile) WriteAll(zones []ZoneRecord) error {
	if zones == nil {
		zones = []ZoneRecord{}
	}
	data, err := json.MarshalIndent(zones, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode zone list: %w", err)
	}
	if err := os.WriteFile(zf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write zone file '%s': %w", zf.path, err)
	}
	return nil
}

func (zf *JSONZoneFile) ReadRaw() ([]byte, error) {
	return os.ReadFile(zf.path)
}
