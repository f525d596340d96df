// Package atlas defines the in-memory model for provider address-range
// documents: a Group of named Regions, each holding an ordered sequence of
// inclusive AddressRanges.
//
// The model is built by core/rangexml and grows monotonically while a
// document streams; callers receive it fully constructed and treat it as
// immutable. Ownership flows strictly Group -> Region -> AddressRange; the
// Region back-reference to its Group is non-owning and exists for navigation
// only.
//
// Addresses are net/netip values: fixed-width, comparable, ordered unsigned.
package atlas
