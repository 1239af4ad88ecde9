package sanitize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	errRecordNotObject = errors.New("record is not a JSON object")
	errTrailingData    = errors.New("unexpected data after record")
)

// record is a top-level JSON object that remembers key order so rewritten
// files only differ in the values that changed.
type record struct {
	keys   []string
	values map[string]json.RawMessage
}

func decodeRecord(data []byte) (*record, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errRecordNotObject
	}

	rec := &record{values: map[string]json.RawMessage{}}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("parse record: %w", err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("parse record: unexpected key %v", keyToken)
		}
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse record: %w", err)
		}
		if _, seen := rec.values[key]; !seen {
			rec.keys = append(rec.keys, key)
		}
		rec.values[key] = raw
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if err := expectEnd(decoder); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return rec, nil
}

// expectEnd reports an error unless only whitespace is left in the input.
func expectEnd(decoder *json.Decoder) error {
	_, err := decoder.Token()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errTrailingData
	}
}

// stringField returns the value under key when it is a non-empty string.
func (r *record) stringField(key string) string {
	raw, ok := r.values[key]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

func (r *record) setString(key, value string) error {
	encoded, err := marshalString(value)
	if err != nil {
		return err
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = encoded
	return nil
}

// encode renders the object with two-space indentation and no trailing
// newline.
func (r *record) encode() ([]byte, error) {
	if len(r.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, key := range r.keys {
		encodedKey, err := marshalString(key)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(encodedKey)
		buf.WriteString(": ")
		if err := json.Indent(&buf, r.values[key], "  ", "  "); err != nil {
			return nil, fmt.Errorf("encode record field %s: %w", key, err)
		}
		if i < len(r.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalString(value string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
