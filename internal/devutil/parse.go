package devutil

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
)

// Errors returned by Parse.
var (
	ErrUnbalancedTags    = errors.New("unbalanced tags")
	ErrUnbalancedMarkers = errors.New("unbalanced selection markers")
)

// Selection markers.
const (
	markerStart = '['
	markerEnd   = ']'
)

// Option configures Parse, Stringify, SetData and GetData.
type Option func(*options)

type options struct {
	backward      bool
	withSelection bool
}

func buildOptions(opts []Option) options {
	o := options{withSelection: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBackward marks the parsed selection as backward.
func WithBackward() Option {
	return func(o *options) {
		o.backward = true
	}
}

// WithoutSelection omits selection markers from the output.
func WithoutSelection() Option {
	return func(o *options) {
		o.withSelection = false
	}
}

// parser tracks the open elements and their offsets in their parents.
type parser struct {
	root   *tree.Element
	stack  []*tree.Element
	path   []int
	opened []tree.Position
	ranges []selection.Range
}

// Parse reads model markup into a new root and selection.
//
// Tag names are lowercased by the tokenizer, so model names are expected to
// be lowercase.
func Parse(markup string, opts ...Option) (*tree.Element, selection.Selection, error) {
	o := buildOptions(opts)
	p := &parser{root: tree.NewRoot()}
	p.stack = []*tree.Element{p.root}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return p.finish(o)
			}
			return nil, selection.Selection{}, fmt.Errorf("parse markup: %w", z.Err())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			attrs := map[string]string{}
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				attrs[string(k)] = string(v)
			}
			el := p.open(string(name), attrs)
			if tt == html.SelfClosingTagToken {
				_ = p.close(el.Name())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if err := p.close(string(name)); err != nil {
				return nil, selection.Selection{}, err
			}

		case html.TextToken:
			if err := p.text(string(z.Text())); err != nil {
				return nil, selection.Selection{}, err
			}
		}
	}
}

func (p *parser) current() *tree.Element {
	return p.stack[len(p.stack)-1]
}

func (p *parser) open(name string, attrs map[string]string) *tree.Element {
	cur := p.current()
	el := tree.NewElement(name, attrs)
	p.path = append(p.path, cur.MaxOffset())
	cur.InsertChildren(cur.ChildCount(), el)
	p.stack = append(p.stack, el)
	return el
}

func (p *parser) close(name string) error {
	if len(p.stack) == 1 || p.current().Name() != name {
		return fmt.Errorf("%w: unexpected </%s>", ErrUnbalancedTags, name)
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.path = p.path[:len(p.path)-1]
	return nil
}

func (p *parser) text(data string) error {
	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		s := buf.String()
		buf.Reset()
		cur := p.current()
		if cur.IsRoot() && strings.TrimFunc(s, unicode.IsSpace) == "" {
			return
		}
		cur.InsertChildren(cur.ChildCount(), tree.NewText(s))
	}

	for _, r := range data {
		switch r {
		case markerStart:
			flush()
			p.opened = append(p.opened, p.position())
		case markerEnd:
			flush()
			if len(p.opened) == 0 {
				return fmt.Errorf("%w: ']' without '['", ErrUnbalancedMarkers)
			}
			start := p.opened[len(p.opened)-1]
			p.opened = p.opened[:len(p.opened)-1]
			p.ranges = append(p.ranges, selection.NewRange(start, p.position()))
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return nil
}

func (p *parser) position() tree.Position {
	path := append(slices.Clone(p.path), p.current().MaxOffset())
	return tree.NewPosition(p.root, path...)
}

func (p *parser) finish(o options) (*tree.Element, selection.Selection, error) {
	if len(p.stack) != 1 {
		return nil, selection.Selection{}, fmt.Errorf("%w: <%s> not closed", ErrUnbalancedTags, p.current().Name())
	}
	if len(p.opened) > 0 {
		return nil, selection.Selection{}, fmt.Errorf("%w: '[' without ']'", ErrUnbalancedMarkers)
	}
	return p.root, selection.New(p.ranges, o.backward), nil
}
