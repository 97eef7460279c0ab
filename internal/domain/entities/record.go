package entities

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is the wire shape of a row in the remote table store. The
// store is schemaless on our side of the fence; typed entities are
// encoded to and decoded from records at the service boundary.
type Record map[string]any

// DecodeRecord decodes a record into a typed struct via its JSON tags.
func DecodeRecord(rec Record, v any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// EncodeRecord converts a typed struct into a record via its JSON tags.
func EncodeRecord(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UnwrapRecord unwraps the `{data: [record]}` envelope some store
// responses use, returning the record itself otherwise.
func UnwrapRecord(rec Record) Record {
	data, ok := rec["data"].([]any)
	if !ok || len(data) == 0 {
		return rec
	}
	if inner, ok := data[0].(map[string]any); ok {
		return Record(inner)
	}
	return rec
}

// Int returns the value at key as an int. JSON numbers and numeric
// strings are accepted; anything else reports false.
func (r Record) Int(key string) (int, bool) {
	return AsInt(r[key])
}

// AsInt converts a decoded JSON value to an int. JSON numbers and
// numeric strings are accepted; anything else reports false.
func AsInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// String returns the value at key rendered as a string, or "" when the
// key is missing or nil. Integral JSON numbers render without a
// fractional part so they compare cleanly against string identifiers.
func (r Record) String(key string) string {
	return stringify(r[key])
}

// IDString returns the record's identifier under idField, falling back
// to the generic "id" field when idField is missing or empty.
func (r Record) IDString(idField string) string {
	if s := stringify(r[idField]); s != "" {
		return s
	}
	return stringify(r["id"])
}

// HasID reports whether the record's identifier (idField or generic
// "id") matches id under string comparison.
func (r Record) HasID(idField, id string) bool {
	return r.IDString(idField) == id
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
