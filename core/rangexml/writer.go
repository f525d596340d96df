package rangexml

import (
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/RangeAtlas/core/atlas"
	"github.com/FocuswithJustin/RangeAtlas/core/encoding"
)

// WriteDocument serializes a Group back to the documented schema. Ranges are
// always written with explicit from/to boundaries; the network attribute is
// not reconstructed, since a range built from explicit boundaries need not
// align to any prefix. Parsing the output yields a Group equal to g.
func WriteDocument(w io.Writer, g *atlas.Group) error {
	var buf strings.Builder

	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	buf.WriteString("<group")
	if g.Name != "" {
		fmt.Fprintf(&buf, ` name="%s"`, encoding.EscapeXMLAttr(g.Name))
	}
	if len(g.Regions) == 0 {
		buf.WriteString("/>\n")
		_, err := io.WriteString(w, buf.String())
		return err
	}
	buf.WriteString(">\n")

	for _, region := range g.Regions {
		fmt.Fprintf(&buf, `  <region name="%s"`, encoding.EscapeXMLAttr(region.Name))
		if region.Description != "" {
			fmt.Fprintf(&buf, ` description="%s"`, encoding.EscapeXMLAttr(region.Description))
		}
		if len(region.Ranges) == 0 {
			buf.WriteString("/>\n")
			continue
		}
		buf.WriteString(">\n")
		for _, rng := range region.Ranges {
			fmt.Fprintf(&buf, "    <range from=\"%s\" to=\"%s\"/>\n", rng.From, rng.To)
		}
		buf.WriteString("  </region>\n")
	}

	buf.WriteString("</group>\n")
	_, err := io.WriteString(w, buf.String())
	return err
}
