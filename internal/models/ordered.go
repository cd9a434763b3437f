package models

import (
	"bytes"
	"encoding/json"
)

// Entry is one key/value pair of an OrderedMap.
type Entry struct {
	Key   string
	Value any
}

// OrderedMap marshals as a JSON object that preserves insertion order.
// Aggregation results are sorted (by value or by group key) and a plain Go
// map would lose that ordering on the wire.
type OrderedMap []Entry

func (m OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
