package ioc

// DependencyGraph is a static view of the container: one node per declared
// type and per registered capability, with an edge to every type a node may
// need. It lists every constructor's parameters, so it over-approximates
// what a single resolution actually touches.
type DependencyGraph struct {
	nodes map[string]*node
	order []string // Preserve first-seen order
}

type node struct {
	name         string
	dependencies []string
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*node),
		order: make([]string, 0),
	}
}

// Graph snapshots the container's registrations and declared constructors.
// Capabilities depend on their implementation; types depend on the
// non-primitive parameter types of all their constructors.
func (c *Container) Graph() *DependencyGraph {
	bindings, constructors := c.registry.snapshot()
	g := NewDependencyGraph()

	for _, b := range sortedBindings(bindings) {
		g.AddNode(b.Capability.String(), []string{b.Implementation.String()})
	}

	for _, t := range sortedTypes(constructors) {
		var deps []string

		seen := make(map[string]bool)

		for _, ctor := range constructors[t] {
			for _, p := range ctor.params {
				if isPrimitive(p.typ) {
					continue
				}

				name := p.typ.String()
				if !seen[name] {
					seen[name] = true
					deps = append(deps, name)
				}
			}
		}

		g.AddNode(t.String(), deps)
	}

	return g
}

// AddNode adds a node with its dependencies. Adding an existing node
// replaces its dependencies but keeps its original position.
func (g *DependencyGraph) AddNode(name string, dependencies []string) {
	if _, exists := g.nodes[name]; !exists {
		g.order = append(g.order, name)
	}

	g.nodes[name] = &node{
		name:         name,
		dependencies: dependencies,
	}
}

// GetDependencies returns the dependency names for a node.
func (g *DependencyGraph) GetDependencies(name string) []string {
	if node, ok := g.nodes[name]; ok {
		return node.dependencies
	}

	return nil
}

// HasNode checks if a node exists in the graph.
func (g *DependencyGraph) HasNode(name string) bool {
	_, ok := g.nodes[name]

	return ok
}

// Nodes returns node names in first-seen order.
func (g *DependencyGraph) Nodes() []string {
	return append([]string(nil), g.order...)
}

// TopologicalSort returns nodes in construction order: dependencies before
// dependents. Nodes without dependencies maintain their first-seen order.
// Returns a circular dependency error naming the full cycle.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	visited := make(map[string]bool)
	var stack []string
	result := make([]string, 0, len(g.nodes))

	for _, name := range g.order {
		if err := g.visit(name, visited, &stack, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// visit performs DFS traversal. stack holds the current path.
func (g *DependencyGraph) visit(name string, visited map[string]bool, stack *[]string, result *[]string) error {
	if visited[name] {
		return nil
	}

	for i, onPath := range *stack {
		if onPath == name {
			cycle := append(append([]string(nil), (*stack)[i:]...), name)

			return ErrCircularDependency(cycle)
		}
	}

	node := g.nodes[name]
	if node == nil {
		// Parameter types without declarations or registrations are leaves
		return nil
	}

	*stack = append(*stack, name)

	for _, dep := range node.dependencies {
		if err := g.visit(dep, visited, stack, result); err != nil {
			return err
		}
	}

	*stack = (*stack)[:len(*stack)-1]
	visited[name] = true
	*result = append(*result, name)

	return nil
}
