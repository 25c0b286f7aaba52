package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type DataType string

const (
	DataTypeString   DataType = "string"
	DataTypeNumber   DataType = "number"
	DataTypeBoolean  DataType = "boolean"
	DataTypeDatetime DataType = "datetime"
	DataTypeObject   DataType = "object"
)

// DataValue is a JSON value tagged with the type it was validated against.
type DataValue struct {
	Type DataType
	Raw  json.RawMessage
}

// ParseDataValue validates raw against typ. An empty typ means string.
func ParseDataValue(typ string, raw json.RawMessage) (DataValue, error) {
	dataType := DataType(typ)

	if dataType == "" {
		dataType = DataTypeString
	}

	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return DataValue{}, ErrInvalidRequest("value is required")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var decoded any

	if err := decoder.Decode(&decoded); err != nil {
		return DataValue{}, ErrInvalidRequest("value is not valid json")
	}

	switch dataType {
	case DataTypeString:
		if _, ok := decoded.(string); !ok {
			return DataValue{}, typeMismatch(dataType)
		}
	case DataTypeNumber:
		if _, ok := decoded.(json.Number); !ok {
			return DataValue{}, typeMismatch(dataType)
		}
	case DataTypeBoolean:
		if _, ok := decoded.(bool); !ok {
			return DataValue{}, typeMismatch(dataType)
		}
	case DataTypeDatetime:
		str, ok := decoded.(string)
		if !ok {
			return DataValue{}, typeMismatch(dataType)
		}
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			return DataValue{}, ErrInvalidRequest("datetime values must be RFC 3339 strings")
		}
	case DataTypeObject:
		switch decoded.(type) {
		case map[string]any, []any:
		default:
			return DataValue{}, typeMismatch(dataType)
		}
	default:
		return DataValue{}, ErrInvalidRequest(fmt.Sprintf("unsupported data type %q", typ))
	}

	var compact bytes.Buffer

	if err := json.Compact(&compact, trimmed); err != nil {
		return DataValue{}, ErrInvalidRequest("value is not valid json")
	}

	return DataValue{
		Type: dataType,
		Raw:  json.RawMessage(compact.Bytes()),
	}, nil
}

func typeMismatch(dataType DataType) *OAuthError {
	return ErrInvalidRequest(fmt.Sprintf("value does not match type %s", dataType))
}
