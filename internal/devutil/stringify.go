package devutil

import (
	"fmt"
	"strings"

	"github.com/dshills/blockfmt/internal/engine/selection"
	"github.com/dshills/blockfmt/internal/engine/tree"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")

// marks holds the markers emitted at one position.
type marks struct {
	ends      int
	collapsed int
	starts    int
}

func (m *marks) String() string {
	return strings.Repeat(string(markerEnd), m.ends) +
		strings.Repeat(string(markerStart)+string(markerEnd), m.collapsed) +
		strings.Repeat(string(markerStart), m.starts)
}

// Stringify writes root as model markup with the selection markers of sel.
func Stringify(root *tree.Element, sel selection.Selection, opts ...Option) string {
	o := buildOptions(opts)
	at := map[string]*marks{}
	if o.withSelection {
		get := func(p tree.Position) *marks {
			key := p.String()
			m, ok := at[key]
			if !ok {
				m = &marks{}
				at[key] = m
			}
			return m
		}
		for _, r := range sel.Ranges() {
			if r.IsCollapsed() {
				get(r.Start).collapsed++
				continue
			}
			get(r.Start).starts++
			get(r.End).ends++
		}
	}

	var sb strings.Builder
	writeChildren(&sb, root, nil, at)
	return sb.String()
}

func writeChildren(sb *strings.Builder, el *tree.Element, path []int, at map[string]*marks) {
	emit := func(offset int) {
		key := fmt.Sprint(append(append([]int(nil), path...), offset))
		if m, ok := at[key]; ok {
			sb.WriteString(m.String())
		}
	}

	offset := 0
	for _, child := range el.Children() {
		switch n := child.(type) {
		case *tree.Text:
			for _, r := range n.Data() {
				emit(offset)
				sb.WriteString(textEscaper.Replace(string(r)))
				offset++
			}
		case *tree.Element:
			emit(offset)
			sb.WriteString("<" + n.Name())
			for _, k := range n.AttributeKeys() {
				v, _ := n.Attribute(k)
				sb.WriteString(fmt.Sprintf(` %s="%s"`, k, attrEscaper.Replace(v)))
			}
			sb.WriteString(">")
			writeChildren(sb, n, append(append([]int(nil), path...), offset), at)
			sb.WriteString("</" + n.Name() + ">")
			offset++
		}
	}
	emit(offset)
}
