// internal/domain/homework/validator.go
package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

// ValidateResponse checks a decoded API body against the expected schema and
// extracts the homework records and the next cursor.
//
// raw is expected to come from encoding/json decoding into an interface value;
// both json.Number and float64 are accepted for current_date.
func ValidateResponse(raw any) (*PollResponse, error) {
	body, ok := raw.(map[string]any)
	if !ok {
		return nil, &SchemaError{Kind: KindNotAMapping}
	}

	rawHomeworks, ok := body[fieldHomeworks]
	if !ok {
		return nil, &SchemaError{Kind: KindMissingField, Field: fieldHomeworks}
	}
	rawDate, ok := body[fieldCurrentDate]
	if !ok {
		return nil, &SchemaError{Kind: KindMissingField, Field: fieldCurrentDate}
	}

	list, ok := rawHomeworks.([]any)
	if !ok {
		return nil, &SchemaError{Kind: KindWrongType, Field: fieldHomeworks}
	}

	currentDate, ok := asInt64(rawDate)
	if !ok {
		return nil, &SchemaError{Kind: KindWrongType, Field: fieldCurrentDate}
	}

	records := make([]Record, 0, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, &SchemaError{Kind: KindWrongType, Field: fmt.Sprintf("%s[%d]", fieldHomeworks, i)}
		}
		records = append(records, Record(rec))
	}

	return &PollResponse{Homeworks: records, CurrentDate: currentDate}, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
