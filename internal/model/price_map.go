package model

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// PriceMap associates item ids with amounts and remembers insertion order.
// Missing keys read as zero. The zero value is an empty, usable map.
type PriceMap struct {
	keys   []string
	values map[string]decimal.Decimal
}

type PriceEntry struct {
	Key   string
	Value decimal.Decimal
}

func NewPriceMap(entries ...PriceEntry) PriceMap {
	var m PriceMap
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set stores v under key. Overwriting keeps the key's original position.
func (m *PriceMap) Set(key string, v decimal.Decimal) {
	if m.values == nil {
		m.values = make(map[string]decimal.Decimal)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the amount for key, or zero when absent.
func (m PriceMap) Get(key string) decimal.Decimal {
	if v, ok := m.values[key]; ok {
		return v
	}
	return decimal.Zero
}

func (m PriceMap) Lookup(key string) (decimal.Decimal, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m PriceMap) Len() int { return len(m.keys) }

func (m PriceMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m PriceMap) Entries() []PriceEntry {
	out := make([]PriceEntry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, PriceEntry{Key: k, Value: m.values[k]})
	}
	return out
}

func (m PriceMap) Clone() PriceMap { return NewPriceMap(m.Entries()...) }

// MarshalJSON writes an object with keys in insertion order and plain numeric values.
func (m PriceMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.WriteString(m.values[k].String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, keeping the document's key order.
// Values may be numbers or numeric strings.
func (m *PriceMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = PriceMap{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("price map: expected JSON object")
	}

	var out PriceMap
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return errors.New("price map: expected string key")
		}
		var v decimal.Decimal
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}
