// internal/domain/homework/parser.go
package homework

import "fmt"

// ParseStatus renders the notification text for a single homework record.
func ParseStatus(rec Record) (string, error) {
	rawName, ok := rec[fieldName]
	if !ok {
		return "", &SchemaError{Kind: KindMissingField, Field: fieldName}
	}
	rawStatus, ok := rec[fieldStatus]
	if !ok {
		return "", &SchemaError{Kind: KindMissingField, Field: fieldStatus}
	}

	name, ok := rawName.(string)
	if !ok {
		return "", &SchemaError{Kind: KindWrongType, Field: fieldName}
	}
	status, ok := rawStatus.(string)
	if !ok {
		return "", &SchemaError{Kind: KindWrongType, Field: fieldStatus}
	}

	verdict, ok := Verdict(Status(status))
	if !ok {
		return "", &SchemaError{Kind: KindUnknownStatus, Field: fieldStatus, Value: status}
	}
	return fmt.Sprintf(`Changed status of review for "%s". %s`, name, verdict), nil
}
