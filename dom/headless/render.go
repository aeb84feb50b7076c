// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package headless

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements have no content and no end tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Keygen: true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

func isVoid(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Namespace == "" && voidElements[n.DataAtom]
}

// containsVoid reports whether n or one of its descendants is a void element.
func containsVoid(n *html.Node) bool {
	if isVoid(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsVoid(c) {
			return true
		}
	}
	return false
}

// render serializes n the way a browser serializes innerHTML. It matches
// html.Render except that void elements are written as <br> rather than
// <br/>.
func render(b *strings.Builder, n *html.Node) error {
	if n.Type != html.ElementNode || !containsVoid(n) {
		return html.Render(b, n)
	}
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if isVoid(n) {
		return nil
	}
	// Same as html.Render: a leading newline in these elements is doubled.
	switch n.DataAtom {
	case atom.Pre, atom.Listing, atom.Textarea:
		if c := n.FirstChild; c != nil && c.Type == html.TextNode && strings.HasPrefix(c.Data, "\n") {
			b.WriteByte('\n')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := render(b, c); err != nil {
			return err
		}
	}
	b.WriteString("</")
	b.WriteString(n.Data)
	b.WriteByte('>')
	return nil
}
