package domain

import (
	"fmt"
	"strings"
)

// Topic is an article title. It is unique among siblings but may recur across branches.
type Topic = string

// Node is one topic in the generated tree with its children in insertion order.
type Node struct {
	Topic    Topic
	children []*Node
	index    map[Topic]int
}

func NewNode(topic Topic) *Node {
	return &Node{Topic: topic}
}

// AddChild attaches child unless a sibling with the same topic already exists.
func (n *Node) AddChild(child *Node) bool {
	if n.index == nil {
		n.index = map[Topic]int{}
	}
	if _, ok := n.index[child.Topic]; ok {
		return false
	}
	n.index[child.Topic] = len(n.children)
	n.children = append(n.children, child)
	return true
}

func (n *Node) Child(topic Topic) (*Node, bool) {
	i, ok := n.index[topic]
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) ChildTopics() []Topic {
	out := make([]Topic, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c.Topic)
	}
	return out
}

func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Walk follows path from n. path[0] must be n's own topic.
func (n *Node) Walk(path []Topic) (*Node, bool) {
	if len(path) == 0 || path[0] != n.Topic {
		return nil, false
	}
	cur := n
	for _, topic := range path[1:] {
		next, ok := cur.Child(topic)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}

// Height is the longest root-to-leaf hop count.
func (n *Node) Height() int {
	h := 0
	for _, c := range n.children {
		if ch := c.Height() + 1; ch > h {
			h = ch
		}
	}
	return h
}

// AnswerPath is the hidden topic sequence: start, depth tree hops, one final hop.
type AnswerPath []Topic

func (p AnswerPath) Target() Topic {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Validate checks that every hop but the last is a child of the previous one in root.
func (p AnswerPath) Validate(root *Node, depth int) error {
	if len(p) != depth+2 {
		return fmt.Errorf("answer path has %d topics, want %d", len(p), depth+2)
	}
	if root == nil || p[0] != root.Topic {
		return fmt.Errorf("answer path does not start at the tree root")
	}
	cur := root
	for i := 0; i < depth; i++ {
		next, ok := cur.Child(p[i+1])
		if !ok {
			return fmt.Errorf("hop %d %q is not a child of %q", i+1, p[i+1], cur.Topic)
		}
		cur = next
	}
	if !cur.IsLeaf() {
		return fmt.Errorf("answer path tree section ends at inner node %q", cur.Topic)
	}
	return nil
}

// FilterTopics drops topics containing any denylisted substring.
func FilterTopics(topics []Topic, denylist []string) []Topic {
	out := make([]Topic, 0, len(topics))
	for _, topic := range topics {
		if Allowed(topic, denylist) {
			out = append(out, topic)
		}
	}
	return out
}

func Allowed(topic Topic, denylist []string) bool {
	if strings.TrimSpace(topic) == "" {
		return false
	}
	for _, deny := range denylist {
		if deny != "" && strings.Contains(topic, deny) {
			return false
		}
	}
	return true
}
