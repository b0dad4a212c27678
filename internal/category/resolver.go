// Package category resolves display categories for items and audit entries
// and aggregates pass/fail counts into scored groups.
package category

import (
	"github.com/alexisbeaulieu97/shipshape/internal/config"
)

const (
	// DefaultName is the category of last resort.
	DefaultName = "Applications"
	// DefaultIcon is the icon of last resort.
	DefaultIcon = "📦"
)

// Ref carries the attributes the resolver cascade consults when naming a
// category: the item's own fields plus the audit source it came from, if any.
type Ref struct {
	Explicit     string
	ExplicitIcon string
	Key          string
	Source       *config.AuditSource
}

type resolverFunc func(Ref) (string, bool)

// Resolver names categories and icons through an ordered list of resolver
// functions tried in sequence. The priority order is: explicit field, the
// source's key table, the source's prefix table, the source display name,
// then the built-in default.
type Resolver struct {
	names []resolverFunc
	icons []resolverFunc
}

// NewResolver builds the standard cascade.
func NewResolver() *Resolver {
	return &Resolver{
		names: []resolverFunc{
			resolveExplicit,
			resolveKeyTable,
			resolvePrefixTable,
			resolveSourceName,
		},
		icons: []resolverFunc{
			resolveExplicitIcon,
			resolveIconByKey,
			resolveIconByPrefix,
			resolveSourceIcon,
		},
	}
}

// Name resolves the category name for a ref.
func (r *Resolver) Name(ref Ref) string {
	for _, fn := range r.names {
		if name, ok := fn(ref); ok {
			return name
		}
	}
	return DefaultName
}

// Icon resolves the category icon for a ref.
func (r *Resolver) Icon(ref Ref) string {
	for _, fn := range r.icons {
		if icon, ok := fn(ref); ok {
			return icon
		}
	}
	return DefaultIcon
}

func resolveExplicit(ref Ref) (string, bool) {
	return ref.Explicit, ref.Explicit != ""
}

func resolveKeyTable(ref Ref) (string, bool) {
	if ref.Source == nil || ref.Key == "" {
		return "", false
	}
	name, ok := ref.Source.Categories[ref.Key]
	return name, ok && name != ""
}

// resolvePrefixTable picks the longest matching prefix so that more specific
// table rows win over broader ones.
func resolvePrefixTable(ref Ref) (string, bool) {
	if ref.Source == nil || ref.Key == "" {
		return "", false
	}
	name, _, ok := longestPrefix(ref.Source.Prefixes, ref.Key)
	return name, ok
}

func resolveSourceName(ref Ref) (string, bool) {
	if ref.Source == nil {
		return "", false
	}
	return ref.Source.Name, ref.Source.Name != ""
}

func resolveExplicitIcon(ref Ref) (string, bool) {
	return ref.ExplicitIcon, ref.ExplicitIcon != ""
}

func resolveIconByKey(ref Ref) (string, bool) {
	if ref.Source == nil || ref.Key == "" {
		return "", false
	}
	icon, ok := ref.Source.Icons[ref.Key]
	return icon, ok && icon != ""
}

func resolveIconByPrefix(ref Ref) (string, bool) {
	if ref.Source == nil || ref.Key == "" {
		return "", false
	}
	_, prefix, ok := longestPrefix(ref.Source.Prefixes, ref.Key)
	if !ok {
		return "", false
	}
	icon, ok := ref.Source.Icons[prefix]
	return icon, ok && icon != ""
}

func resolveSourceIcon(ref Ref) (string, bool) {
	if ref.Source == nil {
		return "", false
	}
	return ref.Source.Icon, ref.Source.Icon != ""
}

func longestPrefix(table map[string]string, key string) (value, prefix string, ok bool) {
	for p, v := range table {
		if v == "" || len(p) > len(key) || key[:len(p)] != p {
			continue
		}
		if !ok || len(p) > len(prefix) {
			value, prefix, ok = v, p, true
		}
	}
	return value, prefix, ok
}
