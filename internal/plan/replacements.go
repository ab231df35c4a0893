package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Replacements is an old-text to new-text dictionary that preserves the
// key order of its JSON source. Order matters: partial substitutions
// are applied cumulatively in key order, so a later key can match text
// introduced by an earlier replacement. Encoding that contract in the
// type keeps it visible instead of depending on map iteration luck.
type Replacements struct {
	keys   []string
	values map[string]string
}

// NewReplacements builds a Replacements from ordered key/value pairs.
// Pairs must have even length; odd trailing elements are rejected.
func NewReplacements(pairs ...string) (Replacements, error) {
	if len(pairs)%2 != 0 {
		return Replacements{}, fmt.Errorf("replacements need key/value pairs, got %d elements", len(pairs))
	}
	var r Replacements
	for i := 0; i < len(pairs); i += 2 {
		r.set(pairs[i], pairs[i+1])
	}
	return r, nil
}

func (r *Replacements) set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, dup := r.values[key]; !dup {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Len returns the number of replacement pairs.
func (r Replacements) Len() int { return len(r.keys) }

// Keys returns the keys in source order.
func (r Replacements) Keys() []string { return r.keys }

// Get looks up a key's replacement text.
func (r Replacements) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// UnmarshalJSON decodes a JSON object while recording key order.
func (r *Replacements) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("replacements must be a JSON object")
	}

	r.keys = nil
	r.values = make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("replacements key must be a string")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("replacement value for %q must be a string: %w", key, err)
		}
		r.set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the object with its original key order.
func (r Replacements) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
