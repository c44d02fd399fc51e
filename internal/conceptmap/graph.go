// Package conceptmap builds the node-link diagram of a topic and its
// subtopics.
package conceptmap

import "strings"

// Node is a vertex in the concept map.
type Node struct {
	Label  string
	Center bool
}

// Edge is an undirected link between two node labels.
type Edge struct {
	From string
	To   string
}

// Graph is a star graph: one center node linked to each distinct subtopic.
type Graph struct {
	Topic string
	nodes []Node
	edges []Edge
	index map[string]int
}

// Build constructs the star graph for topic. Duplicate subtopics collapse
// onto one node and one edge. A subtopic equal to the topic is skipped.
func Build(topic string, subtopics []string) *Graph {
	g := &Graph{
		Topic: topic,
		index: make(map[string]int, len(subtopics)+1),
	}
	g.addNode(topic, true)

	for _, sub := range subtopics {
		if sub == topic {
			continue
		}
		if _, seen := g.index[sub]; seen {
			continue
		}
		g.addNode(sub, false)
		g.edges = append(g.edges, Edge{From: topic, To: sub})
	}
	return g
}

func (g *Graph) addNode(label string, center bool) {
	g.index[label] = len(g.nodes)
	g.nodes = append(g.nodes, Node{Label: label, Center: center})
}

// Nodes returns the nodes, center first, then subtopics in input order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns one edge per distinct subtopic.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Leaves returns the subtopic labels.
func (g *Graph) Leaves() []string {
	out := make([]string, 0, len(g.nodes)-1)
	for _, n := range g.nodes {
		if !n.Center {
			out = append(out, n.Label)
		}
	}
	return out
}

// HasNode reports whether label is in the graph.
func (g *Graph) HasNode(label string) bool {
	_, ok := g.index[label]
	return ok
}

// Degree returns the number of edges touching label.
func (g *Graph) Degree(label string) int {
	n := 0
	for _, e := range g.edges {
		if e.From == label || e.To == label {
			n++
		}
	}
	return n
}

// ParseSubtopics splits a comma-separated list, trimming whitespace and
// dropping empty entries. Duplicates are kept.
func ParseSubtopics(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
