package atlas

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/RangeAtlas/core/errors"
)

// AddressRange is an inclusive lower/upper address boundary pair.
// When derived from a CIDR block, From is the network base address and To is
// the last address of the block, so From <= To always holds. Ranges built
// from explicit boundaries store them as given, without reordering.
type AddressRange struct {
	From netip.Addr `json:"from"`
	To   netip.Addr `json:"to"`
}

// NewAddressRange builds a range from explicit boundaries. The boundaries are
// stored as given; callers that need the computed-versus-supplied cross-check
// go through the document parser instead.
func NewAddressRange(from, to netip.Addr) AddressRange {
	return AddressRange{From: from, To: to}
}

// ParseAddressRange resolves CIDR notation ("<address>/<prefix-length>") into
// an inclusive boundary pair. The prefix length must lie within 0..bit-width
// of the parsed address family (32 for IPv4, 128 for IPv6). From has all host
// bits zeroed, To has them all set; a full-width prefix yields From == To.
// On any failure a FormatError is returned and no partial range escapes.
func ParseAddressRange(text string) (AddressRange, error) {
	idx := strings.LastIndex(text, "/")
	if idx < 0 {
		return AddressRange{}, errors.NewFormat("network", text, "missing prefix length separator")
	}

	addr, err := netip.ParseAddr(text[:idx])
	if err != nil {
		return AddressRange{}, errors.NewFormat("network", text, "unparsable network address")
	}

	prefix, err := strconv.Atoi(text[idx+1:])
	if err != nil {
		return AddressRange{}, errors.NewFormat("network", text, "prefix length is not an integer")
	}
	if prefix < 0 || prefix > addr.BitLen() {
		return AddressRange{}, errors.NewFormat("network", text,
			fmt.Sprintf("prefix length %d outside 0..%d", prefix, addr.BitLen()))
	}

	raw := addr.AsSlice()
	lo := make([]byte, len(raw))
	hi := make([]byte, len(raw))
	for i := range raw {
		start := i * 8
		switch {
		case prefix <= start:
			lo[i] = 0
			hi[i] = 0xFF
		case prefix >= start+8:
			lo[i] = raw[i]
			hi[i] = raw[i]
		default:
			mask := byte(0xFF) << (start + 8 - prefix)
			lo[i] = raw[i] & mask
			hi[i] = raw[i] | ^mask
		}
	}

	from, _ := netip.AddrFromSlice(lo)
	to, _ := netip.AddrFromSlice(hi)
	return AddressRange{From: from, To: to}, nil
}

// Contains reports whether addr falls inside the inclusive boundaries.
// Addresses of a different family than the range never match.
func (r AddressRange) Contains(addr netip.Addr) bool {
	if addr.BitLen() != r.From.BitLen() {
		return false
	}
	return r.From.Compare(addr) <= 0 && addr.Compare(r.To) <= 0
}

// Equal reports whether both boundary pairs are identical.
func (r AddressRange) Equal(other AddressRange) bool {
	return r.From == other.From && r.To == other.To
}

// String renders the range as "from-to" for diagnostics.
func (r AddressRange) String() string {
	return r.From.String() + "-" + r.To.String()
}
