package pdf

import (
	"fmt"
	"strings"
)

// Dictionary is an insertion-ordered mapping from names to objects. PDF
// dictionaries carry no semantic order, but keeping the written order makes
// debugging output deterministic and lets a writer round-trip files.
type Dictionary struct {
	keys   []Name
	values map[Name]Object
}

// NewDictionary builds an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{values: make(map[Name]Object)}
}

// Set inserts or replaces a key. A repeated key keeps its original
// position; the last written value wins.
func (d *Dictionary) Set(key Name, value Object) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value for a key, or nil when absent.
func (d *Dictionary) Get(key Name) Object {
	return d.values[key]
}

// Lookup returns the value for a key or ErrObjectNotFound.
func (d *Dictionary) Lookup(key Name) (Object, error) {
	obj, ok := d.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: dictionary key /%s", ErrObjectNotFound, key)
	}
	return obj, nil
}

// Has reports whether the key is present.
func (d *Dictionary) Has(key Name) bool {
	_, ok := d.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (d *Dictionary) Keys() []Name {
	return d.keys
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.keys) }

// GetName returns the name value for a key
func (d *Dictionary) GetName(key Name) (Name, bool) {
	n, ok := d.values[key].(Name)
	return n, ok
}

// GetInt returns the integer value for a key
func (d *Dictionary) GetInt(key Name) (int64, bool) {
	switch v := d.values[key].(type) {
	case Integer:
		return int64(v), true
	case Real:
		return int64(v), true
	}
	return 0, false
}

// GetArray returns the array value for a key
func (d *Dictionary) GetArray(key Name) (Array, bool) {
	a, ok := d.values[key].(Array)
	return a, ok
}

// GetDict returns the dictionary value for a key
func (d *Dictionary) GetDict(key Name) (*Dictionary, bool) {
	dict, ok := d.values[key].(*Dictionary)
	return dict, ok
}

// GetReference returns the reference value for a key
func (d *Dictionary) GetReference(key Name) (ObjectID, bool) {
	r, ok := d.values[key].(Reference)
	return ObjectID(r), ok
}

func (d *Dictionary) Type() ObjectType { return ObjDictionary }

func (d *Dictionary) String() string {
	var parts []string
	for _, k := range d.keys {
		parts = append(parts, k.String()+" "+d.values[k].String())
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}
