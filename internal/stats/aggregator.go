// Package stats tallies property-value frequency across a run's records and
// renders the ranked report.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/record"
)

// topCount is the number of entries in the ranking section.
const topCount = 10

// divider separates the top-N section from the full listing.
const divider = "----------------------------------------"

// Aggregator folds records into a two-level frequency counter:
// code → raw value → count. The bucketing key is the raw reported value,
// not the file-safe rendered value. Not safe for concurrent use; a run
// aggregates from a single goroutine.
type Aggregator struct {
	reg    *property.Registry
	counts map[string]map[string]int
}

// New creates an empty aggregator over the registry's exclusion rules.
func New(reg *property.Registry) *Aggregator {
	return &Aggregator{
		reg:    reg,
		counts: make(map[string]map[string]int),
	}
}

// Aggregate folds one record's properties into the counters. Properties
// whose code is excluded (date, filename, size) are never counted.
func (a *Aggregator) Aggregate(rec *record.MetadataRecord) {
	for _, pv := range rec.Properties() {
		if a.reg.IsExcluded(pv.Code) {
			continue
		}
		bucket := a.counts[pv.Code]
		if bucket == nil {
			bucket = make(map[string]int)
			a.counts[pv.Code] = bucket
		}
		bucket[pv.Raw]++
	}
}

// entry is one (code, value) pair with its count, carried through sorting.
type entry struct {
	code  string
	name  string
	value string
	count int
}

// Report renders the two-section plain-text report: the top-10 ranking and
// the full listing of values seen more than once, tab-separated as
// name<TAB>value<TAB>count.
func (a *Aggregator) Report() string {
	entries := a.flatten()

	var b strings.Builder

	// Section 1: top 10 by count descending, ties broken by code ascending.
	ranked := make([]entry, len(entries))
	copy(ranked, entries)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		if ranked[i].code != ranked[j].code {
			return ranked[i].code < ranked[j].code
		}
		return ranked[i].value < ranked[j].value
	})
	if len(ranked) > topCount {
		ranked = ranked[:topCount]
	}
	for _, e := range ranked {
		fmt.Fprintf(&b, "%s\t%s\t%d\n", e.name, e.value, e.count)
	}

	b.WriteString(divider)
	b.WriteByte('\n')

	// Section 2: full listing by display name, values ascending, singletons
	// omitted (they are still eligible for section 1).
	full := make([]entry, 0, len(entries))
	for _, e := range entries {
		if e.count > 1 {
			full = append(full, e)
		}
	}
	sort.Slice(full, func(i, j int) bool {
		if full[i].name != full[j].name {
			return full[i].name < full[j].name
		}
		return full[i].value < full[j].value
	})
	for _, e := range full {
		fmt.Fprintf(&b, "%s\t%s\t%d\n", e.name, e.value, e.count)
	}

	return b.String()
}

func (a *Aggregator) flatten() []entry {
	var entries []entry
	for code, bucket := range a.counts {
		name := code
		if d, ok := a.reg.ByCode(code); ok {
			name = d.Name
		}
		for value, count := range bucket {
			entries = append(entries, entry{code: code, name: name, value: value, count: count})
		}
	}
	return entries
}
