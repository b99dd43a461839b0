package xmlcodec

import (
	"encoding/xml"
	"strconv"
	"time"

	"portal-server/pkg/errors"
)

// node is a generic element-tree view of a parsed document. The codec walks
// this tree instead of binding structs directly so a product embedded inside
// a larger portfolio document decodes the same way as a standalone one.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
}

// parseTree parses an XML document into an element tree. Malformed input
// yields a PARSE_ERROR and no partial result.
func parseTree(data []byte) (*node, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, errors.NewAppError(errors.ErrParse, "malformed XML document", err)
	}
	return &root, nil
}

// find returns the first descendant element (including n itself) with the
// given local name, depth first.
func (n *node) find(name string) *node {
	if n.XMLName.Local == name {
		return n
	}
	for i := range n.Nodes {
		if found := n.Nodes[i].find(name); found != nil {
			return found
		}
	}
	return nil
}

// children returns the direct child elements with the given local name.
func (n *node) children(name string) []*node {
	var out []*node
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// child returns the first direct child element with the given local name.
func (n *node) child(name string) *node {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// attr returns the named attribute's value, or "" when absent.
func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// attrInt parses the named attribute as an int. Absent or malformed values
// become 0 rather than errors.
func (n *node) attrInt(name string) int {
	v, err := strconv.Atoi(n.attr(name))
	if err != nil {
		return 0
	}
	return v
}

// attrFloat parses the named attribute as a float64, defaulting to 0.
func (n *node) attrFloat(name string) float64 {
	v, err := strconv.ParseFloat(n.attr(name), 64)
	if err != nil {
		return 0
	}
	return v
}

// attrTime parses the named attribute as RFC3339, defaulting to the zero
// time.
func (n *node) attrTime(name string) time.Time {
	t, err := time.Parse(time.RFC3339, n.attr(name))
	if err != nil {
		return time.Time{}
	}
	return t
}
