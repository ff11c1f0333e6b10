package gdast

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToYAML converts the subtree rooted at n into an ordered YAML mapping:
//
//	kind: member_expr
//	span: [4, 9]
//	argument: {kind: ident, span: [4, 5], text: a}
//	member: ...
//
// Fields that repeat (list elements) become sequences.
func ToYAML(n Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(m, "kind", n.Kind())

	span := n.Span()
	seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	seq.Content = append(seq.Content, intNode(span.Start), intNode(span.End))
	m.Content = append(m.Content, strNode("span"), seq)

	if text, ok := LeafText(n); ok {
		addScalar(m, "text", text)
	}
	if e, ok := n.(*ErrorNode); ok && e.Message != "" {
		addScalar(m, "message", e.Message)
	}

	fields := Fields(n)
	counts := make(map[string]int)
	for _, f := range fields {
		counts[f.Name]++
	}
	lists := make(map[string]*yaml.Node)
	for _, f := range fields {
		if f.Node == nil {
			addScalar(m, f.Name, f.Text)
			continue
		}
		if counts[f.Name] == 1 {
			m.Content = append(m.Content, strNode(f.Name), ToYAML(f.Node))
			continue
		}
		list, ok := lists[f.Name]
		if !ok {
			list = &yaml.Node{Kind: yaml.SequenceNode}
			lists[f.Name] = list
			m.Content = append(m.Content, strNode(f.Name), list)
		}
		list.Content = append(list.Content, ToYAML(f.Node))
	}
	return m
}

// FileToYAML wraps the declarations of a file in a source_file mapping.
func FileToYAML(decls []Decl) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(m, "kind", "source_file")
	list := &yaml.Node{Kind: yaml.SequenceNode}
	for _, d := range decls {
		list.Content = append(list.Content, ToYAML(d))
	}
	m.Content = append(m.Content, strNode("declarations"), list)
	return m
}

func addScalar(m *yaml.Node, key, value string) {
	m.Content = append(m.Content, strNode(key), strNode(value))
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intNode(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}
