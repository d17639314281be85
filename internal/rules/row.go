package rules

import (
	"encoding/json"
	"fmt"
)

// DecodeRow decodes a JSON object into the numeric row Check expects.
// Declared data keys must hold a number or a boolean (true is 1, false is 0);
// a declared key that is absent stays absent and fails later in Check.
// Undeclared fields are kept when they are numeric and dropped otherwise.
func (e *Engine) DecodeRow(data []byte) (map[string]float64, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("row is not a JSON object")
	}
	return e.CoerceRow(raw)
}

// CoerceRow converts decoded JSON values into a numeric row. See DecodeRow.
func (e *Engine) CoerceRow(raw map[string]interface{}) (map[string]float64, error) {
	row := make(map[string]float64, len(raw))
	for k, v := range raw {
		if f, ok := numeric(v); ok {
			row[k] = f
		}
	}

	for _, key := range e.dataKeys {
		v, present := raw[key]
		if !present {
			continue
		}
		if _, ok := numeric(v); !ok {
			return nil, &ValueError{Key: key, Value: v}
		}
	}

	return row, nil
}

func numeric(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
