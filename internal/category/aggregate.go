package category

import (
	"sort"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
)

// Entry is one categorizable unit with its pass/fail outcome.
type Entry struct {
	Ref    Ref
	Passed bool
}

// Aggregate is the rolled-up result for one resolved category name.
type Aggregate struct {
	Name   string
	Icon   string
	Passed int
	Total  int
}

// Score returns passed/total in [0,1]; an empty category scores 0.
func (a Aggregate) Score() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Passed) / float64(a.Total)
}

// Build resolves every entry through the cascade and aggregates counts per
// category name. The result is recomputed from scratch on every call and
// sorted ascending by name in byte order. The first entry to land in a
// category decides its icon.
func Build(resolver *Resolver, entries []Entry) []Aggregate {
	byName := make(map[string]*Aggregate)
	for _, e := range entries {
		name := resolver.Name(e.Ref)
		agg, ok := byName[name]
		if !ok {
			agg = &Aggregate{Name: name, Icon: resolver.Icon(e.Ref)}
			byName[name] = agg
		}
		agg.Total++
		if e.Passed {
			agg.Passed++
		}
	}

	out := make([]Aggregate, 0, len(byName))
	for _, agg := range byName {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Categorizer turns configured items into entries, linking each item to the
// audit source whose store path it reads from so the key and prefix tables
// apply to dashboard items too.
type Categorizer struct {
	resolver *Resolver
	byPath   map[string]*config.AuditSource
}

// NewCategorizer indexes the config's audit sources by store path.
func NewCategorizer(cfg *config.Config) *Categorizer {
	c := &Categorizer{
		resolver: NewResolver(),
		byPath:   make(map[string]*config.AuditSource),
	}
	if cfg != nil && cfg.Audit != nil {
		for i := range cfg.Audit.Sources {
			src := &cfg.Audit.Sources[i]
			c.byPath[src.Path] = src
		}
	}
	return c
}

// Resolver exposes the underlying cascade.
func (c *Categorizer) Resolver() *Resolver {
	return c.resolver
}

// EntryFor builds the aggregation entry for one item.
func (c *Categorizer) EntryFor(item config.Item, passed bool) Entry {
	return Entry{
		Ref: Ref{
			Explicit:     item.Category,
			ExplicitIcon: item.Icon,
			Key:          item.Key,
			Source:       c.sourceFor(item),
		},
		Passed: passed,
	}
}

// Aggregate categorizes items against their pass states and returns the
// sorted aggregates.
func (c *Categorizer) Aggregate(items []config.Item, passed func(id string) bool) []Aggregate {
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, c.EntryFor(it, passed(it.ID)))
	}
	return Build(c.resolver, entries)
}

func (c *Categorizer) sourceFor(item config.Item) *config.AuditSource {
	if item.Store == "" {
		return nil
	}
	return c.byPath[item.Store]
}
