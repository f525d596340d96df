package rangexml

import (
	"encoding/xml"
	"io"
	"net/netip"
	"strings"

	"github.com/FocuswithJustin/RangeAtlas/core/atlas"
	"github.com/FocuswithJustin/RangeAtlas/core/errors"
)

// ParseDocument consumes the stream once, forward-only, and returns the Group
// it describes. The stream is read one token at a time with a single depth
// counter; no lookahead, no re-entry, not safe for concurrent use on one
// stream.
//
// Errors are typed: StructuralError for shape violations, FormatError for
// unparsable attribute values, ConsistencyError when an explicit boundary
// disagrees with the network attribute, and the tokenizer's own errors for
// malformed markup. A clean end of stream before the root closes is not an
// error; whatever Group was built (possibly nil) is returned.
func ParseDocument(r io.Reader) (*atlas.Group, error) {
	decoder := xml.NewDecoder(r)
	// Entity expansion stays disabled, same posture as core/xmlutil.
	decoder.Entity = map[string]string{}

	var (
		depth  int
		group  *atlas.Group
		region *atlas.Region
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return group, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			name := strings.ToLower(t.Name.Local)
			switch {
			case depth == 1:
				if name != "group" {
					return nil, errors.NewStructural(t.Name.Local, "invalid root element, expecting group")
				}
				group = groupFromAttrs(t.Attr)

			case depth == 2 && name == "region":
				if group == nil {
					return nil, errors.NewStructural("region", "region element without enclosing group")
				}
				region = regionFromAttrs(t.Attr)
				group.AddRegion(region)

			case depth == 3 && name == "range":
				if group == nil {
					return nil, errors.NewStructural("range", "range element without enclosing group")
				}
				if region == nil {
					return nil, errors.NewStructural("range", "range element without enclosing region")
				}
				rng, err := rangeFromAttrs(t.Attr)
				if err != nil {
					return nil, err
				}
				region.AddRange(rng)
			}
			// Any other element below the root is ignored for forward
			// compatibility; its children still count toward depth.

		case xml.EndElement:
			depth--
			if depth == 0 {
				// Root closed: done, trailing tokens stay unread.
				return group, nil
			}
		}
		// Character data, comments, and directives carry nothing here.
	}
}

func groupFromAttrs(attrs []xml.Attr) *atlas.Group {
	g := &atlas.Group{}
	for _, a := range attrs {
		// Group names are stored verbatim, untrimmed.
		if strings.EqualFold(a.Name.Local, "name") {
			g.Name = a.Value
		}
	}
	return g
}

func regionFromAttrs(attrs []xml.Attr) *atlas.Region {
	var name, description string
	for _, a := range attrs {
		switch strings.ToLower(a.Name.Local) {
		case "name":
			name = a.Value
		case "description":
			description = a.Value
		}
	}
	return atlas.NewRegion(name, description)
}

// rangeFromAttrs resolves the range attributes. The network attribute is
// authoritative when present; from/to then serve purely as a cross-check and
// any disagreement is a hard error, because disagreement means the document
// was corrupted or hand-edited. Without network, both boundaries must be
// supplied explicitly.
func rangeFromAttrs(attrs []xml.Attr) (atlas.AddressRange, error) {
	var network, fromText, toText string
	var haveNetwork, haveFrom, haveTo bool
	for _, a := range attrs {
		switch strings.ToLower(a.Name.Local) {
		case "network":
			network = strings.TrimSpace(a.Value)
			haveNetwork = true
		case "from":
			fromText = strings.TrimSpace(a.Value)
			haveFrom = true
		case "to":
			toText = strings.TrimSpace(a.Value)
			haveTo = true
		}
	}

	var rng atlas.AddressRange
	resolved := false
	if haveNetwork {
		r, err := atlas.ParseAddressRange(network)
		if err != nil {
			return atlas.AddressRange{}, err
		}
		rng = r
		resolved = true
	}

	var from, to netip.Addr
	if haveFrom {
		a, err := netip.ParseAddr(fromText)
		if err != nil {
			return atlas.AddressRange{}, errors.NewFormat("from", fromText, "invalid from IP address")
		}
		if resolved && a != rng.From {
			return atlas.AddressRange{}, errors.NewConsistency("from", rng.From.String(), a.String())
		}
		from = a
	}
	if haveTo {
		a, err := netip.ParseAddr(toText)
		if err != nil {
			return atlas.AddressRange{}, errors.NewFormat("to", toText, "invalid to IP address")
		}
		if resolved && a != rng.To {
			return atlas.AddressRange{}, errors.NewConsistency("to", rng.To.String(), a.String())
		}
		to = a
	}

	if !resolved {
		if !haveFrom {
			return atlas.AddressRange{}, errors.NewStructural("range", "missing network or from attribute")
		}
		if !haveTo {
			return atlas.AddressRange{}, errors.NewStructural("range", "missing network or to attribute")
		}
		// Boundary order is deliberately not validated here; an inverted
		// pair flows through as supplied.
		rng = atlas.NewAddressRange(from, to)
	}

	return rng, nil
}
