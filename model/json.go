package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONData is an opaque JSON document stored in a JSON column and passed
// through API responses untouched.
type JSONData []byte

func (j JSONData) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSONData) UnmarshalJSON(data []byte) error {
	if j == nil {
		return fmt.Errorf("model.JSONData: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// Empty reports whether the document is absent or falsy: null, "", 0,
// false, {} or []. Unparseable documents count as empty.
func (j JSONData) Empty() bool {
	trimmed := bytes.TrimSpace(j)
	if len(trimmed) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return true
	}
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

func (j *JSONData) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONData(v)
	default:
		return fmt.Errorf("model.JSONData: cannot scan %T", src)
	}
	return nil
}

func (j JSONData) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}
