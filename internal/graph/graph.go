// Package graph orders formula evaluation over the reference graph of an
// estimate and detects reference cycles.
package graph

import (
	"sort"

	"github.com/mmynk/estimator/internal/formula"
	"github.com/mmynk/estimator/internal/models"
)

// Graph is a directed graph with an edge A -> B when A's formula references B.
// Nodes and edges keep insertion order so every traversal is deterministic.
type Graph struct {
	ids       []string
	index     map[string]int
	edges     [][]int
	selfLoops map[int]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:     make(map[string]int),
		selfLoops: make(map[int]struct{}),
	}
}

// AddNode adds a node if it does not exist yet.
func (g *Graph) AddNode(id string) {
	if _, exists := g.index[id]; exists {
		return
	}
	g.index[id] = len(g.ids)
	g.ids = append(g.ids, id)
	g.edges = append(g.edges, nil)
}

// AddEdge records that from depends on to. Targets that are not nodes are
// leaves and take no part in ordering, so the edge is dropped.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	src := g.index[from]
	dst, ok := g.index[to]
	if !ok {
		return
	}
	for _, existing := range g.edges[src] {
		if existing == dst {
			return
		}
	}
	g.edges[src] = append(g.edges[src], dst)
	if src == dst {
		g.selfLoops[src] = struct{}{}
	}
}

// Plan is the result of ordering a graph.
type Plan struct {
	// Order lists the acyclic nodes so that every node follows the nodes it references.
	Order []string

	// Cycles lists each strongly connected group of mutually referencing nodes.
	Cycles [][]string

	cyclic     map[string][]string
	dependents map[string][]string
}

// Cyclic returns the cycle the node belongs to, if any.
func (p *Plan) Cyclic(id string) ([]string, bool) {
	cycle, ok := p.cyclic[id]
	return cycle, ok
}

// Dependents returns every node that directly or transitively references id,
// in breadth-first order.
func (p *Plan) Dependents(id string) []string {
	var out []string
	seen := map[string]struct{}{id: {}}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range p.dependents[current] {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			out = append(out, dep)
			queue = append(queue, dep)
		}
	}
	return out
}

// Order computes a topological evaluation order with a depth-first walk
// (Tarjan's strongly connected components). Nodes on a cycle are reported in
// Cycles and left out of Order; nodes that merely depend on a cycle stay in Order.
func (g *Graph) Order() *Plan {
	plan := &Plan{
		cyclic:     make(map[string][]string),
		dependents: make(map[string][]string),
	}
	for src, targets := range g.edges {
		for _, dst := range targets {
			plan.dependents[g.ids[dst]] = append(plan.dependents[g.ids[dst]], g.ids[src])
		}
	}

	const unvisited = -1
	n := len(g.ids)
	disc := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range disc {
		disc[i] = unvisited
	}
	var stack []int
	counter := 0

	var visit func(v int)
	visit = func(v int) {
		disc[v] = counter
		low[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if disc[w] == unvisited {
				visit(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], disc[w])
			}
		}

		if low[v] != disc[v] {
			return
		}

		// v is the root of a component; every component it references was emitted already
		var component []int
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}

		_, selfLoop := g.selfLoops[v]
		if len(component) == 1 && !selfLoop {
			plan.Order = append(plan.Order, g.ids[v])
			return
		}

		sort.Ints(component)
		cycle := make([]string, len(component))
		for i, idx := range component {
			cycle[i] = g.ids[idx]
		}
		plan.Cycles = append(plan.Cycles, cycle)
		for _, id := range cycle {
			plan.cyclic[id] = cycle
		}
	}

	for v := 0; v < n; v++ {
		if disc[v] == unvisited {
			visit(v)
		}
	}
	return plan
}

// Resolve builds the reference graph of the items whose formulas parsed into
// trees and orders it. Items without a tree are leaves.
func Resolve(items []models.LineItem, trees map[string]formula.Node) *Plan {
	g := New()
	for _, item := range items {
		if _, ok := trees[item.ID]; ok {
			g.AddNode(item.ID)
		}
	}
	for _, item := range items {
		tree, ok := trees[item.ID]
		if !ok {
			continue
		}
		for _, ref := range formula.References(tree) {
			g.AddEdge(item.ID, ref)
		}
	}
	return g.Order()
}
