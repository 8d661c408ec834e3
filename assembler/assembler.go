// Package assembler merges the planned skeleton with the independently
// generated section fragments into the final document.
package assembler

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/MananGandhi1810/multi-llm-website-generator/generator"
)

// Assemble parses the skeleton, replaces each section's id-addressed node
// with that section's markup, aggregates css/js into one block each, and
// serializes the result. results must be in plan dispatch order; the
// aggregated blocks preserve that order even though the calls completed in
// any order. The script block is inserted before the style block, a fixed
// order kept run-to-run.
func Assemble(skeleton string, results []generator.SectionResult) (string, error) {
	doc, err := html.Parse(strings.NewReader(skeleton))
	if err != nil {
		return "", fmt.Errorf("skeleton does not parse: %w", err)
	}

	var cssParts, jsParts []string
	for _, res := range results {
		node := findByID(doc, res.SectionName)
		if node == nil {
			return "", fmt.Errorf("assembly failed: no element with id %q in skeleton", res.SectionName)
		}
		if err := replaceWithFragment(node, res.HTML); err != nil {
			return "", fmt.Errorf("assembly failed for section %q: %w", res.SectionName, err)
		}
		if res.CSS != "" {
			cssParts = append(cssParts, res.CSS)
		}
		if res.JS != "" {
			jsParts = append(jsParts, res.JS)
		}
	}

	head := findElement(doc, atom.Head)
	if head == nil {
		return "", fmt.Errorf("assembly failed: skeleton has no head element")
	}
	prependRawText(head, atom.Style, strings.Join(cssParts, "\n"))
	prependRawText(head, atom.Script, strings.Join(jsParts, "\n"))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("serialization failed: %w", err)
	}
	return UnescapeMarkup(buf.String()), nil
}

// UnescapeMarkup undoes the serializer's angle-bracket escaping in text
// nodes that were meant to stay executable markup. Idempotent: the escaped
// forms never survive a pass, so a second pass is a no-op.
func UnescapeMarkup(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	return strings.ReplaceAll(s, "&gt;", ">")
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// replaceWithFragment swaps node for the parsed nodes of fragment, keeping
// document position.
func replaceWithFragment(node *html.Node, fragment string) error {
	parent := node.Parent
	if parent == nil {
		return fmt.Errorf("node has no parent")
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return err
	}
	for _, fn := range nodes {
		parent.InsertBefore(fn, node)
	}
	parent.RemoveChild(node)
	return nil
}

// prependRawText inserts <tag>\ncontent\n</tag> as the head's first child.
// Script and style are raw-text elements, so the renderer leaves their
// content unescaped.
func prependRawText(head *html.Node, a atom.Atom, content string) {
	el := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	el.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: "\n" + content + "\n",
	})
	head.InsertBefore(el, head.FirstChild)
}
