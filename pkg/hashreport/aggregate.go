package hashreport

import (
	"slices"

	"github.com/weberc2/hashreport/pkg/types"
)

// Group is the ordered list of occurrences sharing a hash.
type Group struct {
	// Hash is the normalized hash shared by the occurrences.
	Hash string

	// Occurrences are in the order they were ingested.
	Occurrences []types.Occurrence
}

// IsOrphan reports whether the hash was observed exactly once.
func (g *Group) IsOrphan() bool { return len(g.Occurrences) == 1 }

// Aggregate maps each hash to its group. Groups are only ever created or
// appended to. An `Aggregate` is owned by a single goroutine.
type Aggregate struct {
	groups map[string]*Group

	// hashes holds the keys of `groups` in first-seen order so traversal is
	// deterministic.
	hashes []string
	rows   int
}

// NewAggregate creates an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{groups: make(map[string]*Group)}
}

// Group returns the group for `hash`, creating an empty one if the hash has
// not been seen. `hash` must already be normalized.
func (a *Aggregate) Group(hash string) (group *Group, created bool) {
	if group = a.groups[hash]; group != nil {
		return
	}
	group = &Group{Hash: hash}
	a.groups[hash] = group
	a.hashes = append(a.hashes, hash)
	created = true
	return
}

// Add appends the record's occurrence to the group for its hash. It reports
// whether the record is the first with its hash.
func (a *Aggregate) Add(record *types.Record) (created bool) {
	var group *Group
	group, created = a.Group(record.Hash)
	group.Occurrences = append(group.Occurrences, record.Occurrence())
	a.rows++
	return
}

// Lookup returns the group for `hash`, or nil.
func (a *Aggregate) Lookup(hash string) *Group {
	return a.groups[types.NormalizeHash(hash)]
}

// Len returns the number of distinct hashes.
func (a *Aggregate) Len() int { return len(a.hashes) }

// Rows returns the number of occurrences across all groups.
func (a *Aggregate) Rows() int { return a.rows }

// Hashes returns the distinct hashes in first-seen order, or in
// lexicographic order if `sorted` is set.
func (a *Aggregate) Hashes(sorted bool) []string {
	hashes := slices.Clone(a.hashes)
	if sorted {
		slices.Sort(hashes)
	}
	return hashes
}

// Each calls `fn` for every group in the order given by `Hashes`, stopping
// at the first error.
func (a *Aggregate) Each(sorted bool, fn func(*Group) error) error {
	for _, hash := range a.Hashes(sorted) {
		if err := fn(a.groups[hash]); err != nil {
			return err
		}
	}
	return nil
}
