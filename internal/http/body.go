package http

import (
	"bytes"
	"encoding/json"
)

// jsonObject parses a request body. ok is false only when the body is not
// JSON; fields is nil for JSON that is not an object, such as null or [].
func jsonObject(body []byte) (fields map[string]json.RawMessage, ok bool) {
	if !json.Valid(body) {
		return nil, false
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, true
	}
	return fields, true
}

// fieldValue decodes fields[key] into a plain Go value, keeping whole numbers
// as int64. A missing key or JSON null yields nil.
func fieldValue(fields map[string]json.RawMessage, key string) any {
	raw, ok := fields[key]
	if !ok {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}

	n, isNumber := v.(json.Number)
	if !isNumber {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
