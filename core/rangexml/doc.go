// Package rangexml parses provider address-range XML documents into the
// core/atlas model.
//
// The document shape is:
//
//	<group name="...">
//	  <region name="..." description="...">
//	    <range network="a.b.c.d/nn"/>
//	    <range from="a.b.c.d" to="w.x.y.z"/>
//	  </region>
//	</group>
//
// Element and attribute names match case-insensitively; unknown elements and
// attributes are ignored so newer documents keep parsing. Parsing streams one
// token at a time and never materializes a document tree.
package rangexml
