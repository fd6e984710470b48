package sql

import (
	"fmt"

	"github.com/syssam/nexus"
)

// ScanValues reads all remaining rows into collection values, mapping
// columns to record entries by name. Byte slices are converted to
// strings, as the MySQL driver returns text columns as []byte.
func ScanValues(rows *Rows) ([]nexus.Value, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: scan: %w", err)
	}
	var values []nexus.Value
	for rows.Next() {
		dest := make([]any, len(columns))
		for i := range dest {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("dialect/sql: scan: %w", err)
		}
		record := make(map[string]any, len(columns))
		for i, name := range columns {
			record[name] = normalizeColumn(*dest[i].(*any))
		}
		values = append(values, nexus.NewValue(record))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dialect/sql: scan: %w", err)
	}
	return values, nil
}

func normalizeColumn(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
