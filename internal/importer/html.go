// Package importer reads bookmarks exported by browsers in the Netscape
// bookmark file format.
package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/bmk-dev/bmk/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns its bookmarks.
// The folders enclosing a bookmark become its tags, together with any
// comma-separated TAGS attribute. A <DD> following a link is its description.
func ParseHTMLBookmarks(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	// Track current folder stack for hierarchy
	var folderStack []string
	pendingFolder := "" // folder waiting to be pushed on next DL
	lastBookmark := -1  // index of the bookmark a <DD> describes

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - pushed when we see the next DL
				pendingFolder = FolderTag(getTextContent(n))
				lastBookmark = -1
				return

			case "a":
				href := strings.TrimSpace(getAttr(n, "href"))
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				tags := append([]string(nil), folderStack...)
				if attr := getAttr(n, "tags"); attr != "" {
					tags = append(tags, strings.Split(attr, ",")...)
				}

				bookmarks = append(bookmarks, model.NewBookmark(model.NewBookmarkParams{
					Name: title,
					URL:  href,
					Tags: tags,
				}))
				lastBookmark = len(bookmarks) - 1
				return

			case "dd":
				if lastBookmark >= 0 {
					bookmarks[lastBookmark].Desc = getOwnText(n)
					lastBookmark = -1
				}
				// A DD may wrap a nested list in malformed files
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode {
						parse(c)
					}
				}
				return

			case "dl":
				// Definition list - marks folder contents
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				lastBookmark = -1
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// FolderTag turns a folder name into a tag: lower-cased, with runs of
// whitespace replaced by a single dash.
func FolderTag(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getOwnText returns the text of n's direct text children only.
func getOwnText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
