package kenpom

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"grizstats/internal/recordset"
)

// Decode errors.
var (
	ErrEmptyResponse   = errors.New("empty response body")
	ErrUnexpectedShape = errors.New("response shape not recognized")
	ErrUnexpectedToken = errors.New("unexpected JSON token")
)

// Decode converts an API response body into a record set. Shapes are tried
// in order: a top-level array of row objects, an object wrapping the rows in
// a "data" field, and finally a generic flatten of a single object into one
// row. The first shape that matches wins; if none do, the decode error
// propagates.
func Decode(body []byte) (*recordset.RecordSet, error) {
	value, err := decodeOrdered(body)
	if err != nil {
		return nil, err
	}

	for _, shape := range shapes {
		if rs, ok := shape(value); ok {
			return rs, nil
		}
	}

	return nil, ErrUnexpectedShape
}

// shape attempts one interpretation of the decoded payload, declining with
// ok=false when it does not apply.
type shape func(value any) (rs *recordset.RecordSet, ok bool)

var shapes = []shape{decodeRowList, decodeWrappedRows, decodeFlatten}

// decodeRowList interprets the payload as a list of row objects.
func decodeRowList(value any) (*recordset.RecordSet, bool) {
	list, ok := value.([]any)
	if !ok {
		return nil, false
	}

	rs := recordset.New()

	for _, element := range list {
		obj, ok := element.(*object)
		if !ok {
			return nil, false
		}

		row := make(recordset.Row)
		flattenInto(row, "", obj)

		for _, key := range flattenKeys("", obj) {
			if !rs.HasColumn(key) {
				rs.Columns = append(rs.Columns, key)
			}
		}

		rs.Append(row)
	}

	// Keep the schema uniform even when rows disagree on fields.
	for _, row := range rs.Rows {
		for _, col := range rs.Columns {
			if _, ok := row[col]; !ok {
				row[col] = nil
			}
		}
	}

	return rs, true
}

// decodeWrappedRows interprets the payload as an object carrying the row
// list in a "data" field.
func decodeWrappedRows(value any) (*recordset.RecordSet, bool) {
	obj, ok := value.(*object)
	if !ok {
		return nil, false
	}

	data, ok := obj.values["data"]
	if !ok {
		return nil, false
	}

	if _, isList := data.([]any); !isList {
		return nil, false
	}

	return decodeRowList(data)
}

// decodeFlatten interprets the payload as a single arbitrarily nested
// object, flattened into one row with dot-joined keys.
func decodeFlatten(value any) (*recordset.RecordSet, bool) {
	obj, ok := value.(*object)
	if !ok {
		return nil, false
	}

	rs := recordset.New(flattenKeys("", obj)...)

	row := make(recordset.Row, len(rs.Columns))
	flattenInto(row, "", obj)
	rs.Append(row)

	return rs, true
}

// object is a JSON object with its keys kept in document order, since the
// output column order must follow the payload.
type object struct {
	keys   []string
	values map[string]any
}

// flattenKeys lists an object's scalar fields depth-first with dot-joined
// names, in document order.
func flattenKeys(prefix string, obj *object) []string {
	var keys []string

	for _, key := range obj.keys {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		if nested, ok := obj.values[key].(*object); ok {
			keys = append(keys, flattenKeys(name, nested)...)

			continue
		}

		keys = append(keys, name)
	}

	return keys
}

// flattenInto copies an object's scalar fields into row under dot-joined
// names. Arrays carry no tabular meaning here and become null.
func flattenInto(row recordset.Row, prefix string, obj *object) {
	for _, key := range obj.keys {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch v := obj.values[key].(type) {
		case *object:
			flattenInto(row, name, v)
		case []any:
			row[name] = nil
		default:
			row[name] = v
		}
	}
}

// decodeOrdered decodes JSON keeping object key order and integer-ness of
// numbers, which encoding/json's map decoding both discard.
func decodeOrdered(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedToken, t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}

		f, err := t.Float64()
		if err != nil {
			return nil, err
		}

		return f, nil
	default:
		// string, bool or nil
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (*object, error) {
	obj := &object{values: make(map[string]any)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v", ErrUnexpectedToken, tok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		obj.keys = append(obj.keys, key)
		obj.values[key] = value
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}

	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	list := []any{}

	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		list = append(list, value)
	}

	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}

	return list, nil
}
