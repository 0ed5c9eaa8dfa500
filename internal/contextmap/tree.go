// Package contextmap turns a session's message history into the
// size-weighted tree its treemap view is rendered from.
package contextmap

import (
	"fmt"
	"strings"

	"ctxmap/internal/types"
)

// Grouping selects the tree shape below each message node.
type Grouping string

const (
	// GroupingType buckets same-type parts under an intermediate node
	// when a message has more than one of that type.
	GroupingType Grouping = "type"
	// GroupingFlat keeps every part a direct child of its message.
	GroupingFlat Grouping = "flat"
)

// ControlSizing decides how bookkeeping parts (step markers, snapshots,
// patches, retries, compaction) are charged.
type ControlSizing string

const (
	// ControlSizingZero charges them nothing: they occupy no context.
	ControlSizingZero ControlSizing = "zero"
	// ControlSizingSerialized charges their full wire length instead.
	ControlSizingSerialized ControlSizing = "serialized"
)

type Config struct {
	Grouping Grouping
	Control  ControlSizing
	// Root is the session's working directory; file paths under it are
	// shown relative. Empty leaves every path absolute.
	Root string
}

// Node is one box of the context map. A node with children is a
// container and carries Value 0; its mass is the sum of descendant
// leaves. A node without children is a leaf and resolves back to its
// part through LeafKey.
type Node struct {
	Name      string
	Value     int
	Layer     int
	ColorType string
	LeafKey   string
	Children  []*Node
}

// PartIndex resolves a selected leaf back to its originating part.
// Rebuilt on every session load, never patched.
type PartIndex map[string]types.Part

// LeafKey identifies a part by position within the loaded session.
func LeafKey(msgIdx, partIdx int) string {
	return fmt.Sprintf("%d-%d", msgIdx, partIdx)
}

// Build walks the fetched messages in order and produces the root node
// plus the index used to resolve leaf selections.
func Build(msgs []types.Message, cfg Config) (*Node, PartIndex) {
	root := &Node{Name: "session"}
	index := make(PartIndex)
	for mi, msg := range msgs {
		name := fmt.Sprintf("%s:%d", msg.Role, mi)
		if mi == len(msgs)-1 {
			name += " (last)"
		}
		container := &Node{Name: name, Layer: 1, ColorType: msg.Role}
		leaves := make([]*Node, 0, len(msg.Parts))
		for pi, part := range msg.Parts {
			key := LeafKey(mi, pi)
			index[key] = part
			leaves = append(leaves, &Node{
				Name:      Label(part, cfg.Root),
				Value:     Size(part, cfg.Control),
				Layer:     2,
				ColorType: ColorType(part),
				LeafKey:   key,
			})
		}
		if cfg.Grouping == GroupingFlat {
			container.Children = leaves
		} else {
			container.Children = groupByType(leaves)
		}
		root.Children = append(root.Children, container)
	}
	return root, index
}

// groupByType buckets sibling leaves by the label segment before the
// first colon, in first-seen order. Lone members stay inline; larger
// buckets move one layer down under a container named by the prefix.
func groupByType(leaves []*Node) []*Node {
	var order []string
	buckets := make(map[string][]*Node)
	for _, leaf := range leaves {
		prefix, _, _ := strings.Cut(leaf.Name, ":")
		if _, seen := buckets[prefix]; !seen {
			order = append(order, prefix)
		}
		buckets[prefix] = append(buckets[prefix], leaf)
	}
	out := make([]*Node, 0, len(order))
	for _, prefix := range order {
		group := buckets[prefix]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		base := group[0].Layer
		for i, leaf := range group {
			leaf.Layer++
			if leaf.Name == prefix {
				leaf.Name = fmt.Sprintf("%s[%d]", prefix, i)
			}
		}
		out = append(out, &Node{
			Name:      prefix,
			Layer:     base,
			ColorType: prefix,
			Children:  group,
		})
	}
	return out
}

// Total sums every leaf value under n.
func Total(n *Node) int {
	if n == nil {
		return 0
	}
	sum := n.Value
	for _, c := range n.Children {
		sum += Total(c)
	}
	return sum
}
