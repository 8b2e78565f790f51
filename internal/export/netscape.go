// Package export converts Lindle folders to and from the Netscape bookmark
// file format understood by every major browser.
package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"lindle/internal/lindle"
)

const doctype = "NETSCAPE-Bookmark-file-1"

// ImportedLink is a link read from a bookmark file. Folder is the name of
// the innermost enclosing folder, empty for top-level links.
type ImportedLink struct {
	Folder string
	Name   string
	URL    string
}

// WriteNetscape renders folders, with their links, as a Netscape bookmark
// file.
func WriteNetscape(w io.Writer, folders []lindle.Folder) error {
	list := element(atom.Dl)
	for _, folder := range folders {
		list.AppendChild(text("\n"))
		list.AppendChild(folderNode(folder))
	}
	list.AppendChild(text("\n"))

	nodes := []*html.Node{
		{Type: html.DoctypeNode, Data: doctype},
		element(atom.Meta,
			html.Attribute{Key: "http-equiv", Val: "Content-Type"},
			html.Attribute{Key: "content", Val: "text/html; charset=UTF-8"}),
		withText(element(atom.Title), "Bookmarks"),
		withText(element(atom.H1), "Bookmarks"),
		list,
	}

	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("failed to render bookmarks: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("failed to render bookmarks: %w", err)
		}
	}
	return nil
}

func folderNode(folder lindle.Folder) *html.Node {
	header := withText(element(atom.H3), folder.Name)
	if folder.PublicFolder {
		header.Attr = append(header.Attr, html.Attribute{Key: "public", Val: "1"})
	}

	links := element(atom.Dl)
	for _, link := range folder.Links {
		a := withText(element(atom.A, html.Attribute{Key: "href", Val: link.URL}), link.Name)
		dt := element(atom.Dt)
		dt.AppendChild(a)
		links.AppendChild(text("\n"))
		links.AppendChild(dt)
	}
	links.AppendChild(text("\n"))

	dt := element(atom.Dt)
	dt.AppendChild(header)
	dt.AppendChild(text("\n"))
	dt.AppendChild(links)
	return dt
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}

// ParseNetscape reads the links of a Netscape bookmark file.
func ParseNetscape(r io.Reader) ([]ImportedLink, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmark file: %w", err)
	}

	var links []ImportedLink
	var walk func(n *html.Node, folder string)
	walk = func(n *html.Node, folder string) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.A:
				link := ImportedLink{Folder: folder, Name: textContent(n)}
				for _, attr := range n.Attr {
					if attr.Key == "href" {
						link.URL = attr.Val
					}
				}
				if link.URL != "" {
					links = append(links, link)
				}
			case atom.Dl:
				if title, ok := folderTitle(n); ok {
					folder = title
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, folder)
		}
	}
	walk(doc, "")

	return links, nil
}

// folderTitle returns the name of the folder owning list. A folder is an
// H3 immediately followed by its DL; an H3 without one is an empty folder
// and owns nothing.
func folderTitle(list *html.Node) (string, bool) {
	for s := list.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type != html.ElementNode {
			continue
		}
		if s.DataAtom == atom.H3 {
			return textContent(s), true
		}
		return "", false
	}
	return "", false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(sb.String())
}
