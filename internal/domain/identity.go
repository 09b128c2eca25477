package domain

import (
	"errors"
	"fmt"
)

// NameID is one roster entry.
type NameID struct {
	Name string
	ID   int
}

// NameIDTable is an immutable, exactly invertible name↔id mapping.
type NameIDTable struct {
	byName map[string]int
	byID   map[int]string
}

// NewNameIDTable builds a table, rejecting empty names, non-positive ids and
// any name or id that appears twice.
func NewNameIDTable(entries []NameID) (*NameIDTable, error) {
	t := &NameIDTable{
		byName: make(map[string]int, len(entries)),
		byID:   make(map[int]string, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("boat id %d: empty name", e.ID)
		}
		if e.ID <= 0 {
			return nil, fmt.Errorf("boat %q: id must be positive, got %d", e.Name, e.ID)
		}
		if prev, ok := t.byName[e.Name]; ok {
			return nil, fmt.Errorf("boat %q: listed with ids %d and %d", e.Name, prev, e.ID)
		}
		if prev, ok := t.byID[e.ID]; ok {
			return nil, fmt.Errorf("boat id %d: shared by %q and %q", e.ID, prev, e.Name)
		}
		t.byName[e.Name] = e.ID
		t.byID[e.ID] = e.Name
	}
	return t, nil
}

// Lookup returns the id for an exact name.
func (t *NameIDTable) Lookup(name string) (int, error) {
	id, ok := t.byName[name]
	if !ok {
		return 0, &LookupError{Name: name}
	}
	return id, nil
}

// Name returns the name registered for id.
func (t *NameIDTable) Name(id int) (string, error) {
	name, ok := t.byID[id]
	if !ok {
		return "", &LookupError{ID: id}
	}
	return name, nil
}

// Len returns the number of entries.
func (t *NameIDTable) Len() int { return len(t.byID) }

// HasID reports whether id is registered.
func (t *NameIDTable) HasID(id int) bool {
	_, ok := t.byID[id]
	return ok
}

// Resolve returns a copy of set with every BoatID looked up by display
// name. The first unknown name aborts with a *LookupError.
func Resolve(set RecordSet, table *NameIDTable) (RecordSet, error) {
	if table == nil {
		return nil, errors.New("resolve boat ids: no table")
	}
	out := make(RecordSet, len(set))
	for i, rec := range set {
		id, err := table.Lookup(rec.DisplayName)
		if err != nil {
			return nil, fmt.Errorf("resolve record %d: %w", i, err)
		}
		rec.BoatID = id
		out[i] = rec
	}
	return out, nil
}

// CheckReverse verifies that every BoatID in set has a name in table.
func CheckReverse(set RecordSet, table *NameIDTable) error {
	for i, rec := range set {
		if _, err := table.Name(rec.BoatID); err != nil {
			return fmt.Errorf("reverse lookup record %d: %w", i, err)
		}
	}
	return nil
}
