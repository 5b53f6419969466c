package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write emits the model as a PbixProj-style folder under dir: a database
// file with table metadata and relationships, per-table column JSON files,
// and per-measure DAX files. The external template compiler consumes this
// layout directly.
func (m *Model) Write(dir string) error {
	database := map[string]any{
		"name":          m.Name,
		"tables":        tableNames(m),
		"relationships": m.Relationships,
	}
	if err := writeJSON(filepath.Join(dir, "database.json"), database); err != nil {
		return err
	}

	for _, table := range m.Tables {
		tableDir := filepath.Join(dir, "tables", table.Name)

		meta := map[string]any{
			"name":   table.Name,
			"source": table.Source,
		}
		if err := writeJSON(filepath.Join(tableDir, "table.json"), meta); err != nil {
			return err
		}

		for _, col := range table.Columns {
			path := filepath.Join(tableDir, "columns", col.Name+".json")
			if err := writeJSON(path, col); err != nil {
				return err
			}
		}
		for _, measure := range table.Measures {
			path := filepath.Join(tableDir, "measures", measure.Name+".dax")
			if err := writeText(path, measure.DAX+"\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

func tableNames(m *Model) []string {
	names := make([]string, len(m.Tables))
	for i, t := range m.Tables {
		names[i] = t.Name
	}
	return names
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return writeText(path, string(data)+"\n")
}

func writeText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
