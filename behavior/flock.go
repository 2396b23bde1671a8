package behavior

import "github.com/phanxgames/bunnyworld/stage"

// Flock is an ordered group of creatures that avoid each other.
type Flock struct {
	members []*Creature
	nodes   []*stage.Node
}

// NewFlock creates an empty flock.
func NewFlock() *Flock {
	return &Flock{}
}

// SpawnFlock creates one creature per entry of data under parent. Entries
// whose texture is missing are skipped.
func SpawnFlock(host Host, parent *stage.Node, data []CreatureData) *Flock {
	f := NewFlock()
	for _, d := range data {
		f.Add(CreateCreature(host, parent, d))
	}
	return f
}

// Add appends c. Nil creatures are ignored.
func (f *Flock) Add(c *Creature) {
	if c == nil {
		return
	}
	f.members = append(f.members, c)
}

// Len returns the number of live creatures.
func (f *Flock) Len() int {
	f.prune()
	return len(f.members)
}

// Members returns the live creatures in insertion order.
func (f *Flock) Members() []*Creature {
	f.prune()
	return f.members
}

// Nodes returns the nodes of the live creatures. The slice is reused by the
// next call.
func (f *Flock) Nodes() []*stage.Node {
	f.prune()
	f.nodes = f.nodes[:0]
	for _, c := range f.members {
		f.nodes = append(f.nodes, c.node)
	}
	return f.nodes
}

// Update runs collision avoidance for every member against the others.
func (f *Flock) Update() {
	nodes := f.Nodes()
	for _, c := range f.members {
		c.Update(nodes)
	}
}

// Destroy stops every member. The nodes are left in the tree.
func (f *Flock) Destroy() {
	for _, c := range f.members {
		c.Destroy()
	}
	clear(f.members)
	f.members = f.members[:0]
}

func (f *Flock) prune() {
	kept := f.members[:0]
	for _, c := range f.members {
		if !c.destroyed && c.node.Active() {
			kept = append(kept, c)
		}
	}
	clear(f.members[len(kept):])
	f.members = kept
}
