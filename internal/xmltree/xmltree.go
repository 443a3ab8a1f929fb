// Package xmltree parses an XML document into a lightweight element tree
// and exposes a cursor for walking it. Element names keep their wire
// prefix (e.g. "scan:MaxWidth"), with well-known eSCL namespaces pinned
// to their canonical prefixes regardless of what the device declared.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is a single element of the parsed document.
type Node struct {
	// Name is the prefixed element name as used by the protocol,
	// e.g. "scan:ScannerCapabilities" or "pwg:ModelName".
	Name string

	// Text is the element's character data, whitespace-trimmed.
	Text string

	// Children are the child elements in document order.
	Children []*Node
}

// Well-known namespace URIs mapped to their canonical prefixes. Devices
// are free to declare arbitrary prefixes; the element names we match
// against are part of the wire contract, so these are normalized.
var wellKnownNS = map[string]string{
	"http://schemas.hp.com/imaging/escl/2011/05/03": "scan",
	"http://www.pwg.org/schemas/2010/12/sm":         "pwg",
}

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Node
		stack []*Node
		texts [][]byte
		// Namespace scopes, innermost last. Each maps URI -> prefix.
		scopes []map[string]string
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmltree: malformed document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			scopes = append(scopes, namespaceScope(scopes, t.Attr))
			node := &Node{Name: prefixedName(t.Name, scopes)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xmltree: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			texts = append(texts, nil)

		case xml.EndElement:
			node := stack[len(stack)-1]
			node.Text = strings.TrimSpace(string(texts[len(texts)-1]))
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
			scopes = scopes[:len(scopes)-1]

		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1] = append(texts[len(texts)-1], t...)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("xmltree: document has no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("xmltree: unbalanced document")
	}
	return root, nil
}

// namespaceScope extends the innermost scope with the xmlns declarations
// found on the current element.
func namespaceScope(scopes []map[string]string, attrs []xml.Attr) map[string]string {
	var inherited map[string]string
	if len(scopes) > 0 {
		inherited = scopes[len(scopes)-1]
	}

	declared := false
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			declared = true
			break
		}
	}
	if !declared {
		return inherited
	}

	scope := make(map[string]string, len(inherited)+2)
	for uri, prefix := range inherited {
		scope[uri] = prefix
	}
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			scope[a.Value] = a.Name.Local
		}
	}
	return scope
}

// prefixedName renders an element name with its namespace prefix. The
// canonical prefix wins for well-known namespaces; otherwise the prefix
// declared by the document is used, and elements without a namespace
// keep their bare local name.
func prefixedName(name xml.Name, scopes []map[string]string) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := wellKnownNS[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	if len(scopes) > 0 {
		if prefix, ok := scopes[len(scopes)-1][name.Space]; ok {
			return prefix + ":" + name.Local
		}
	}
	return name.Local
}
