// Package conversion maps model elements to view (HTML) elements and back.
//
// Each rule is bidirectional: ElementToElement("heading1", "h2") renders a
// heading1 block as <h2> and reads <h2> back as heading1.
package conversion

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/blockfmt/internal/engine/tree"
)

// Errors returned by conversion.
var (
	ErrRuleExists = errors.New("conversion rule already exists")
	ErrNoRule     = errors.New("no conversion rule")
	ErrEmptyName  = errors.New("conversion name is empty")
)

// Rule is a bidirectional element mapping.
type Rule struct {
	Model string
	View  string
}

// Conversion holds the element rules of an editor.
type Conversion struct {
	mu      sync.RWMutex
	toView  map[string]string
	toModel map[string]string
}

// New creates an empty conversion.
func New() *Conversion {
	return &Conversion{
		toView:  make(map[string]string),
		toModel: make(map[string]string),
	}
}

// ElementToElement adds a rule between a model element and a view tag.
func (c *Conversion) ElementToElement(model, view string) error {
	if model == "" || view == "" {
		return ErrEmptyName
	}
	view = strings.ToLower(view)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.toView[model]; ok {
		return fmt.Errorf("%w: %s -> %s", ErrRuleExists, model, existing)
	}
	if existing, ok := c.toModel[view]; ok {
		return fmt.Errorf("%w: %s <- %s", ErrRuleExists, existing, view)
	}
	c.toView[model] = view
	c.toModel[view] = model
	return nil
}

// ViewFor returns the view tag of a model element.
func (c *Conversion) ViewFor(model string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.toView[model]
	return v, ok
}

// ModelFor returns the model element of a view tag.
func (c *Conversion) ModelFor(view string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.toModel[strings.ToLower(view)]
	return m, ok
}

// Rules returns all rules sorted by model name.
func (c *Conversion) Rules() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rules := make([]Rule, 0, len(c.toView))
	for m, v := range c.toView {
		rules = append(rules, Rule{Model: m, View: v})
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Model < rules[j].Model
	})
	return rules
}

// Downcast renders the children of root as HTML.
func (c *Conversion) Downcast(root *tree.Element) (string, error) {
	var buf bytes.Buffer
	for _, child := range root.Children() {
		n, err := c.toViewNode(child)
		if err != nil {
			return "", err
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render: %w", err)
		}
	}
	return buf.String(), nil
}

func (c *Conversion) toViewNode(n tree.Node) (*html.Node, error) {
	switch node := n.(type) {
	case *tree.Text:
		return &html.Node{Type: html.TextNode, Data: node.Data()}, nil
	case *tree.Element:
		tag, ok := c.ViewFor(node.Name())
		if !ok {
			return nil, fmt.Errorf("%w for model element %q", ErrNoRule, node.Name())
		}
		out := &html.Node{
			Type:     html.ElementNode,
			Data:     tag,
			DataAtom: atom.Lookup([]byte(tag)),
		}
		for _, k := range node.AttributeKeys() {
			v, _ := node.Attribute(k)
			out.Attr = append(out.Attr, html.Attribute{Key: k, Val: v})
		}
		for _, child := range node.Children() {
			cn, err := c.toViewNode(child)
			if err != nil {
				return nil, err
			}
			out.AppendChild(cn)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported node %T", n)
	}
}

// Upcast parses an HTML fragment into detached model blocks. Elements with a
// rule become model elements holding their text content. Unknown elements
// are unwrapped when they contain known blocks, otherwise their text is put
// in a fallback element. Top-level text is also put in fallback elements and
// whitespace between blocks is dropped.
func (c *Conversion) Upcast(source, fallback string) ([]tree.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(source), body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []tree.Node
	for _, n := range nodes {
		out = append(out, c.upcastBlock(n, fallback)...)
	}
	return out, nil
}

func (c *Conversion) upcastBlock(n *html.Node, fallback string) []tree.Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimFunc(n.Data, unicode.IsSpace) == "" {
			return nil
		}
		return []tree.Node{tree.NewElement(fallback, nil, tree.NewText(n.Data))}

	case html.ElementNode:
		if model, ok := c.ModelFor(n.Data); ok {
			el := tree.NewElement(model, nil)
			if text := textContent(n); text != "" {
				el.InsertChildren(0, tree.NewText(text))
			}
			return []tree.Node{el}
		}
		if c.containsKnown(n) {
			var out []tree.Node
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				out = append(out, c.upcastBlock(child, fallback)...)
			}
			return out
		}
		text := textContent(n)
		if strings.TrimFunc(text, unicode.IsSpace) == "" {
			return nil
		}
		return []tree.Node{tree.NewElement(fallback, nil, tree.NewText(text))}
	}
	return nil
}

func (c *Conversion) containsKnown(n *html.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if _, ok := c.ModelFor(child.Data); ok || c.containsKnown(child) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
