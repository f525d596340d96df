// Package xmlutil provides DOM-level XML helpers: well-formedness checks,
// XPath queries, and pretty-printing.
//
// The streaming document parser in core/rangexml never builds a tree; these
// helpers exist for tooling (the fmt and query CLI commands) where a tree is
// the right shape. Entity expansion is disabled throughout, so external
// entities are never fetched or expanded.
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/RangeAtlas/core/encoding"
)

// Validate checks data for well-formedness and returns the first tokenizer
// error, or nil.
func Validate(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Entity = map[string]string{}
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Query runs an XPath expression against the document and returns the
// serialized form of each matching node.
func Query(data []byte, expr string) ([]string, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	nodes, err := xmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	results := make([]string, len(nodes))
	for i, n := range nodes {
		results[i] = n.OutputXML(true)
	}
	return results, nil
}

// Format pretty-prints the document with the given indent string.
func Format(data []byte, indent string) ([]byte, error) {
	if indent == "" {
		indent = "  "
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	var buf bytes.Buffer
	formatNode(&buf, root, 0, indent)
	return buf.Bytes(), nil
}

func formatNode(w *bytes.Buffer, n *xmlquery.Node, depth int, indent string) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			formatNode(w, child, depth, indent)
		}

	case xmlquery.DeclarationNode:
		w.WriteString("<?xml")
		for _, attr := range n.Attr {
			fmt.Fprintf(w, ` %s="%s"`, attr.Name.Local, encoding.EscapeXMLAttr(attr.Value))
		}
		w.WriteString("?>\n")

	case xmlquery.ElementNode:
		writeIndent(w, depth, indent)
		w.WriteString("<")
		w.WriteString(n.Data)
		for _, attr := range n.Attr {
			fmt.Fprintf(w, ` %s="%s"`, attr.Name.Local, encoding.EscapeXMLAttr(attr.Value))
		}

		childElems := false
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xmlquery.ElementNode {
				childElems = true
				break
			}
		}

		text := strings.TrimSpace(n.InnerText())
		if !childElems && text == "" {
			w.WriteString("/>\n")
			return
		}

		w.WriteString(">")
		if childElems {
			w.WriteString("\n")
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == xmlquery.ElementNode || child.Type == xmlquery.CommentNode {
					formatNode(w, child, depth+1, indent)
				}
			}
			writeIndent(w, depth, indent)
		} else {
			w.WriteString(encoding.EscapeXMLText(text))
		}
		fmt.Fprintf(w, "</%s>\n", n.Data)

	case xmlquery.CommentNode:
		writeIndent(w, depth, indent)
		fmt.Fprintf(w, "<!--%s-->\n", n.Data)
	}
}

func writeIndent(w *bytes.Buffer, depth int, indent string) {
	for i := 0; i < depth; i++ {
		w.WriteString(indent)
	}
}
