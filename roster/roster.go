// Package roster edits the ordered list of employees present on a work log.
//
// A Roster never becomes empty: it always holds at least one entry, which may be blank
// while the team leader is still typing. Blank entries are only dropped by Materialize.
package roster

import "strings"

// RemovePolicy decides what happens when the only remaining entry is removed.
type RemovePolicy int

const (
	// ResetToBlank replaces the last entry with a single blank one.
	ResetToBlank RemovePolicy = iota
	// KeepLast rejects removal of the last entry.
	KeepLast
)

// Roster is an ordered list of free-text employee names.
type Roster []string

// New copies entries into a Roster, substituting a single blank entry for an empty list.
func New(entries ...string) Roster {
	if len(entries) == 0 {
		return Roster{""}
	}
	r := make(Roster, len(entries))
	copy(r, entries)
	return r
}

// Add appends a blank entry.
func (r Roster) Add() Roster {
	if len(r) == 0 {
		return Roster{""}
	}
	next := r.clone(len(r) + 1)
	return append(next, "")
}

// Update replaces the entry at index verbatim. Out-of-range indexes leave the roster unchanged.
func (r Roster) Update(index int, value string) Roster {
	next := r.clone(len(r))
	if index < 0 || index >= len(next) {
		return next
	}
	next[index] = value
	return next
}

// Remove deletes the entry at index. Out-of-range indexes leave the roster unchanged.
// Removing the only entry follows policy.
func (r Roster) Remove(index int, policy RemovePolicy) Roster {
	if index < 0 || index >= len(r) {
		return r.clone(len(r))
	}
	if len(r) == 1 {
		if policy == KeepLast {
			return r.clone(1)
		}
		return Roster{""}
	}
	next := make(Roster, 0, len(r)-1)
	next = append(next, r[:index]...)
	return append(next, r[index+1:]...)
}

// CanRemove reports whether Remove would actually delete an entry under policy.
func (r Roster) CanRemove(policy RemovePolicy) bool {
	return len(r) > 1 || policy == ResetToBlank
}

// Materialize trims every entry and drops the blank ones, keeping order.
func (r Roster) Materialize() []string {
	names := []string{}
	for _, entry := range r {
		if name := strings.TrimSpace(entry); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (r Roster) clone(capacity int) Roster {
	if len(r) == 0 {
		return Roster{""}
	}
	next := make(Roster, len(r), capacity)
	copy(next, r)
	return next
}
