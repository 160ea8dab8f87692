package dataprocessing

import (
	"strings"

	"sheetops/pkg/contracts/domain"
)

// KeySeparator joins the parts of a composite key
const KeySeparator = "_"

// Set is a string membership set
type Set map[string]struct{}

// Add inserts key
func (s Set) Add(key string) {
	s[key] = struct{}{}
}

// Has reports whether key is a member
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// KeyOf returns the join key of row: the textual form of field when it is
// present and non-empty.
func KeyOf(row domain.Row, field string) (string, bool) {
	if StateOf(row, field) != FieldPresent {
		return "", false
	}
	return Text(row, field), true
}

// IndexBy maps each key of keyField to the position of the first row carrying it.
// Rows without a usable key are skipped.
func IndexBy(t domain.Table, keyField string) map[string]int {
	index := make(map[string]int, len(t.Data))
	for i, row := range t.Data {
		key, ok := KeyOf(row, keyField)
		if !ok {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	return index
}

// LeftJoin calls fn, in row order, for every row of t whose keyField matches an
// entry of index. Rows without a match are ignored.
func LeftJoin[T any](t domain.Table, keyField string, index map[string]T, fn func(pos int, row domain.Row, match T)) {
	for i, row := range t.Data {
		key, ok := KeyOf(row, keyField)
		if !ok {
			continue
		}
		if match, found := index[key]; found {
			fn(i, row, match)
		}
	}
}

// KeySet collects the non-empty values of field
func KeySet(t domain.Table, field string) Set {
	set := make(Set, len(t.Data))
	for _, row := range t.Data {
		if key, ok := KeyOf(row, field); ok {
			set.Add(key)
		}
	}
	return set
}

// GroupSet accumulates, per non-empty keyField, the set of valueField values.
// Rows that do not supply valueField are skipped.
func GroupSet(t domain.Table, keyField, valueField string) map[string]Set {
	groups := make(map[string]Set)
	for _, row := range t.Data {
		key, ok := KeyOf(row, keyField)
		if !ok {
			continue
		}
		value, ok := TryGet(row, valueField)
		if !ok {
			continue
		}
		group, exists := groups[key]
		if !exists {
			group = make(Set)
			groups[key] = group
		}
		group.Add(value.String())
	}
	return groups
}

// CompositeKey joins parts with KeySeparator
func CompositeKey(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

// ExactKey identifies a value by kind and text, so 17 and "17" differ
func ExactKey(v domain.Value) string {
	return CompositeKey(v.Kind().String(), v.String())
}

// CompositeKeySet collects CompositeKey(keyField, valueField) for rows with a
// non-empty keyField and a present valueField.
func CompositeKeySet(t domain.Table, keyField, valueField string) Set {
	set := make(Set, len(t.Data))
	for _, row := range t.Data {
		key, ok := KeyOf(row, keyField)
		if !ok {
			continue
		}
		value, ok := TryGet(row, valueField)
		if !ok {
			continue
		}
		set.Add(CompositeKey(key, value.String()))
	}
	return set
}
