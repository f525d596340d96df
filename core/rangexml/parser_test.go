package rangexml

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/RangeAtlas/core/atlas"
	"github.com/FocuswithJustin/RangeAtlas/core/errors"
)

func parse(t *testing.T, doc string) (*atlas.Group, error) {
	t.Helper()
	return ParseDocument(strings.NewReader(doc))
}

func mustParse(t *testing.T, doc string) *atlas.Group {
	t.Helper()
	g, err := parse(t, doc)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if g == nil {
		t.Fatal("ParseDocument returned no group")
	}
	return g
}

// TestParseDocument verifies the full happy path: group, regions, and both
// range attribute forms.
func TestParseDocument(t *testing.T) {
	g := mustParse(t, `<?xml version="1.0"?>
<group name="ExampleNet">
  <region name=" us-east " description="east coast">
    <range network="10.0.0.0/24"/>
    <range from="192.168.0.10" to="192.168.0.20"/>
  </region>
  <region name="eu-west"/>
</group>`)

	if g.Name != "ExampleNet" {
		t.Errorf("group name = %q", g.Name)
	}
	if len(g.Regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(g.Regions))
	}

	east := g.Regions[0]
	if east.Name != "us-east" {
		t.Errorf("region name = %q, want trimmed %q", east.Name, "us-east")
	}
	if east.Description != "east coast" {
		t.Errorf("description = %q", east.Description)
	}
	if east.Group() != g {
		t.Error("region back-reference not set")
	}
	if len(east.Ranges) != 2 {
		t.Fatalf("ranges = %d, want 2", len(east.Ranges))
	}

	want, err := atlas.ParseAddressRange("10.0.0.0/24")
	if err != nil {
		t.Fatal(err)
	}
	if !east.Ranges[0].Equal(want) {
		t.Errorf("range[0] = %v, want %v", east.Ranges[0], want)
	}
	if got := east.Ranges[1].String(); got != "192.168.0.10-192.168.0.20" {
		t.Errorf("range[1] = %s", got)
	}

	if len(g.Regions[1].Ranges) != 0 {
		t.Errorf("empty region should hold no ranges")
	}
}

// TestParseDocumentCaseInsensitive verifies element and attribute name
// matching ignores case while attribute values stay untouched.
func TestParseDocumentCaseInsensitive(t *testing.T) {
	g := mustParse(t, `<GROUP NAME="Mixed">
  <Region Name="R1" DESCRIPTION="d">
    <RANGE NETWORK="10.0.0.0/30"/>
  </Region>
</GROUP>`)

	if g.Name != "Mixed" {
		t.Errorf("group name = %q", g.Name)
	}
	if len(g.Regions) != 1 || len(g.Regions[0].Ranges) != 1 {
		t.Fatalf("model shape wrong: %+v", g)
	}
}

// TestParseDocumentGroupNameVerbatim verifies the deliberate asymmetry:
// region names are trimmed, group names are not.
func TestParseDocumentGroupNameVerbatim(t *testing.T) {
	g := mustParse(t, `<group name=" padded "><region name=" r "/></group>`)
	if g.Name != " padded " {
		t.Errorf("group name = %q, want verbatim %q", g.Name, " padded ")
	}
	if g.Regions[0].Name != "r" {
		t.Errorf("region name = %q, want trimmed %q", g.Regions[0].Name, "r")
	}
}

// TestParseDocumentWrongRoot verifies the root element check.
func TestParseDocumentWrongRoot(t *testing.T) {
	_, err := parse(t, `<ranges><region name="r"/></ranges>`)
	if err == nil {
		t.Fatal("expected structural error for wrong root")
	}
	if !errors.Is(err, errors.ErrStructure) {
		t.Errorf("error %v is not structural", err)
	}
	if !strings.Contains(err.Error(), "expecting group") {
		t.Errorf("message should say what was expected: %s", err.Error())
	}
}

// TestParseDocumentRangeOutsideRegion verifies that a range nested under an
// unknown depth-2 element is rejected for its missing region ancestor.
func TestParseDocumentRangeOutsideRegion(t *testing.T) {
	_, err := parse(t, `<group name="g"><holder><range network="10.0.0.0/24"/></holder></group>`)
	if err == nil {
		t.Fatal("expected structural error")
	}
	if !errors.Is(err, errors.ErrStructure) {
		t.Errorf("error %v is not structural", err)
	}
	if !strings.Contains(err.Error(), "region") {
		t.Errorf("message should name the missing ancestor: %s", err.Error())
	}
}

// TestParseDocumentUnknownElementsIgnored verifies forward compatibility:
// unrecognized elements at any depth below the root are skipped.
func TestParseDocumentUnknownElementsIgnored(t *testing.T) {
	g := mustParse(t, `<group name="g">
  <metadata><published>2026-08-30</published></metadata>
  <region name="r">
    <note>free text</note>
    <range network="10.0.0.0/24"/>
  </region>
</group>`)

	if len(g.Regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(g.Regions))
	}
	if len(g.Regions[0].Ranges) != 1 {
		t.Errorf("ranges = %d, want 1", len(g.Regions[0].Ranges))
	}
}

// TestParseDocumentStopsAtRootClose verifies that parsing returns as soon as
// the root element closes, leaving trailing tokens unread.
func TestParseDocumentStopsAtRootClose(t *testing.T) {
	g := mustParse(t, `<group name="g"/><!-- trailing comment -->this is not even xml <<<`)
	if g.Name != "g" {
		t.Errorf("group name = %q", g.Name)
	}
}

// TestParseDocumentEmptyStream verifies the lenient end-of-stream behavior:
// no tokens at all yields no group and no error.
func TestParseDocumentEmptyStream(t *testing.T) {
	g, err := parse(t, "")
	if err != nil {
		t.Fatalf("empty stream should not error: %v", err)
	}
	if g != nil {
		t.Errorf("empty stream should build no group, got %+v", g)
	}
}

// TestParseDocumentMalformed verifies that tokenizer failures surface as
// malformed-markup errors, distinct from the semantic kinds.
func TestParseDocumentMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"mismatched close", `<group name="g"><region></group>`},
		{"unclosed root", `<group name="g">`},
		{"garbage", `<<<not xml`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.doc)
			if err == nil {
				t.Fatal("expected tokenizer error")
			}
			if !errors.IsMalformed(err) {
				t.Errorf("error %v should classify as malformed markup", err)
			}
		})
	}
}

// TestRangeConsistency verifies the network-versus-explicit cross-check.
func TestRangeConsistency(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			"redundant agreement",
			`<group><region name="r"><range network="10.0.0.0/24" from="10.0.0.0" to="10.0.0.255"/></region></group>`,
			nil,
		},
		{
			"to disagrees",
			`<group><region name="r"><range network="10.0.0.0/24" to="10.0.1.0"/></region></group>`,
			errors.ErrConsistency,
		},
		{
			"from disagrees",
			`<group><region name="r"><range network="10.0.0.0/24" from="10.0.0.1"/></region></group>`,
			errors.ErrConsistency,
		},
		{
			"network alone",
			`<group><region name="r"><range network="10.0.0.0/24"/></region></group>`,
			nil,
		},
		{
			"boundaries alone",
			`<group><region name="r"><range from="10.0.0.1" to="10.0.0.9"/></region></group>`,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := parse(t, tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if g.RangeCount() != 1 {
					t.Errorf("expected one range, got %d", g.RangeCount())
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v, want kind %v", err, tt.wantErr)
			}
		})
	}
}

// TestRangeConsistencyMessageCitesBothValues verifies diagnosability of the
// consistency failure without re-reading the source.
func TestRangeConsistencyMessageCitesBothValues(t *testing.T) {
	_, err := parse(t, `<group><region name="r"><range network="10.0.0.0/24" to="10.0.1.0"/></region></group>`)
	if err == nil {
		t.Fatal("expected consistency error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "10.0.0.255") || !strings.Contains(msg, "10.0.1.0") {
		t.Errorf("message should cite computed and supplied values: %s", msg)
	}
}

// TestRangeMissingAttributes verifies the distinct structural errors for each
// missing boundary when no network is given.
func TestRangeMissingAttributes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"nothing", `<group><region name="r"><range/></region></group>`, "from"},
		{"only from", `<group><region name="r"><range from="10.0.0.1"/></region></group>`, "to"},
		{"only to", `<group><region name="r"><range to="10.0.0.9"/></region></group>`, "from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.doc)
			if err == nil {
				t.Fatal("expected structural error")
			}
			if !errors.Is(err, errors.ErrStructure) {
				t.Errorf("error %v is not structural", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message should name missing attribute %q: %s", tt.want, err.Error())
			}
		})
	}
}

// TestRangeFormatErrors verifies that unparsable addresses yield format
// errors naming the attribute.
func TestRangeFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad network", `<group><region name="r"><range network="nonsense"/></region></group>`},
		{"bad from", `<group><region name="r"><range from="nonsense" to="10.0.0.9"/></region></group>`},
		{"bad to", `<group><region name="r"><range from="10.0.0.1" to="nonsense"/></region></group>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.doc)
			if err == nil {
				t.Fatal("expected format error")
			}
			if !errors.Is(err, errors.ErrFormat) {
				t.Errorf("error %v is not a format error", err)
			}
		})
	}
}

// TestRangeInvertedBoundariesAllowed verifies the preserved permissiveness:
// explicit boundaries are stored as supplied, even inverted.
func TestRangeInvertedBoundariesAllowed(t *testing.T) {
	g := mustParse(t, `<group><region name="r"><range from="10.0.0.9" to="10.0.0.1"/></region></group>`)
	rng := g.Regions[0].Ranges[0]
	if rng.From.String() != "10.0.0.9" || rng.To.String() != "10.0.0.1" {
		t.Errorf("inverted pair should flow through as supplied, got %v", rng)
	}
}

// TestRangeAttributeValuesTrimmed verifies that range attribute values are
// trimmed before parsing.
func TestRangeAttributeValuesTrimmed(t *testing.T) {
	g := mustParse(t, `<group><region name="r"><range network=" 10.0.0.0/24 " from=" 10.0.0.0 " to=" 10.0.0.255 "/></region></group>`)
	if got := g.Regions[0].Ranges[0].String(); got != "10.0.0.0-10.0.0.255" {
		t.Errorf("range = %s", got)
	}
}

// TestParseDocumentIdempotent verifies that parsing the same content twice
// yields equal but distinct models.
func TestParseDocumentIdempotent(t *testing.T) {
	doc := `<group name="p"><region name="r"><range network="10.0.0.0/24"/></region></group>`
	a := mustParse(t, doc)
	b := mustParse(t, doc)
	if a == b {
		t.Fatal("expected distinct instances")
	}
	if !a.Equal(b) {
		t.Error("re-parse should yield a structurally equal group")
	}
}
