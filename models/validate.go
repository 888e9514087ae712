package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validate checks a decoded JSON payload against the schema and returns the
// normalized client fields in column order. Unknown payload keys are ignored.
// Presence and type are checked for every column before any length or format
// check, each pass in the schema's validation order. The first failure is
// reported as a *ValidationError.
func Validate(schema Schema, payload map[string]any) (Fields, error) {
	order := schema.validationOrder()
	values := make([]string, len(schema.Columns))

	for _, i := range order {
		col := schema.Columns[i]
		switch col.Kind {
		case KindID, KindTimestamp:
			continue
		case KindCounter:
			values[i] = "0"
			continue
		case KindBool:
			b, err := boolValue(col, payload[col.Key])
			if err != nil {
				return nil, err
			}
			values[i] = strconv.FormatBool(b)
			continue
		}

		value, err := textValue(col, payload[col.Key])
		if err != nil {
			return nil, err
		}
		if value == "" && col.Required {
			return nil, &ValidationError{Field: col.Key, Message: col.Key + " required"}
		}
		values[i] = value
	}

	for _, i := range order {
		col := schema.Columns[i]
		value := values[i]
		if value == "" {
			continue
		}
		switch col.Kind {
		case KindText, KindDate, KindEmail:
		default:
			continue
		}

		if col.MaxLen > 0 && utf8.RuneCountInString(value) > col.MaxLen {
			return nil, &ValidationError{
				Field:   col.Key,
				Message: fmt.Sprintf("%s exceeds %d characters", col.Key, col.MaxLen),
			}
		}

		if col.Kind == KindDate {
			if _, err := ParseDate(value); err != nil {
				return nil, &ValidationError{Field: col.Key, Message: col.Key + " must be a YYYY-MM-DD date"}
			}
		}

		if col.Kind == KindEmail && !isValidEmail(value) {
			return nil, &ValidationError{Field: col.Key, Message: col.Key + " format is invalid"}
		}
	}

	fields := make(Fields, 0, len(schema.Columns))
	for i, col := range schema.Columns {
		if col.Kind == KindID || col.Kind == KindTimestamp {
			continue
		}
		fields = append(fields, Field{Key: col.Key, Value: values[i]})
	}

	return fields, nil
}

// textValue converts a raw JSON value to a trimmed string
func textValue(col FieldSpec, raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", &ValidationError{Field: col.Key, Message: col.Key + " must be a string"}
	}
}

// boolValue converts a raw JSON value to a boolean, defaulting to false
func boolValue(col FieldSpec, raw any) (bool, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false":
			return false, nil
		case "true":
			return true, nil
		}
	}
	return false, &ValidationError{Field: col.Key, Message: col.Key + " must be a boolean"}
}
