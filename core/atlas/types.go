package atlas

import "strings"

// types.go - Consolidated model type definitions.
// The document parser in core/rangexml builds these; consumers only read them.

// Group is the document root: a provider's name and its ordered regions.
// Name is stored verbatim, untrimmed. Historical documents pad group names
// deliberately and expect them back unchanged.
type Group struct {
	// Name is the provider name, or empty when the document omits it.
	Name string `json:"name,omitempty"`

	// Regions holds the regions in document order.
	Regions []*Region `json:"regions,omitempty"`
}

// Region is a named node owning an ordered sequence of address ranges and
// carrying a non-owning reference back to its Group.
type Region struct {
	// Name is the region name, trimmed of surrounding whitespace.
	Name string `json:"name"`

	// Description is optional free text, stored verbatim.
	Description string `json:"description,omitempty"`

	// Ranges holds the address ranges in document order. Duplicates are
	// permitted; no overlap checking or merging happens here.
	Ranges []AddressRange `json:"ranges,omitempty"`

	group *Group
}

// NewRegion creates a detached Region. The name is trimmed, the description
// kept verbatim. The Region becomes observable to callers only after it is
// attached to a Group.
func NewRegion(name, description string) *Region {
	return &Region{
		Name:        strings.TrimSpace(name),
		Description: description,
	}
}

// Group returns the owning group. The reference is non-owning and is set
// exactly once, when the region is attached.
func (r *Region) Group() *Group {
	return r.group
}

// AddRange appends a range in document order.
func (r *Region) AddRange(ar AddressRange) {
	r.Ranges = append(r.Ranges, ar)
}

// AddRegion appends a region in document order and sets its back-reference.
func (g *Group) AddRegion(r *Region) {
	r.group = g
	g.Regions = append(g.Regions, r)
}

// RangeCount returns the total number of ranges across all regions.
func (g *Group) RangeCount() int {
	n := 0
	for _, r := range g.Regions {
		n += len(r.Ranges)
	}
	return n
}

// Equal reports structural equality: same name, same regions in the same
// order. Back-references are ignored, so two independently parsed copies of
// one document compare equal.
func (g *Group) Equal(other *Group) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Name != other.Name || len(g.Regions) != len(other.Regions) {
		return false
	}
	for i, r := range g.Regions {
		if !r.Equal(other.Regions[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of name, description, and ranges.
func (r *Region) Equal(other *Region) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Name != other.Name || r.Description != other.Description || len(r.Ranges) != len(other.Ranges) {
		return false
	}
	for i, ar := range r.Ranges {
		if !ar.Equal(other.Ranges[i]) {
			return false
		}
	}
	return true
}
