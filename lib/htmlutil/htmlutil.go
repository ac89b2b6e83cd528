package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// FindInlineScript returns the text of the first inline <script> whose body
// contains every one of the given substrings.
func FindInlineScript(doc *goquery.Document, contains ...string) (string, bool) {
	for _, node := range doc.Find("script").Nodes {
		text := GetText(node)
		matched := true
		for _, c := range contains {
			if !strings.Contains(text, c) {
				matched = false
				break
			}
		}
		if matched {
			return text, true
		}
	}
	return "", false
}
