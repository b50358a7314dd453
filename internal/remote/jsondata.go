package remote

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONData scans and writes JSONB columns as raw bytes.
type JSONData json.RawMessage

func (j *JSONData) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			*j = nil
			return nil
		}
		*j = append((*j)[:0], v...)
	case string:
		if v == "" {
			*j = nil
			return nil
		}
		*j = JSONData(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONData", value)
	}

	return nil
}

// Value writes text; lib/pq would send []byte as bytea.
func (j JSONData) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j JSONData) String() string {
	if len(j) == 0 {
		return "null"
	}
	return string(j)
}

// param returns nil for an empty document so COALESCE keeps the stored value.
func (j JSONData) param() interface{} {
	if len(j) == 0 {
		return nil
	}
	return string(j)
}
