package sand

// Cell is one grid position. For Fire cells the secondary id records the kind
// being consumed; it drives burn time, motion, and the solid mask. Lifetime
// counts the ticks a Fire cell has burned; it resets on every kind change and
// stays 0 for other kinds. The updated flag is transient
// bookkeeping cleared at the start of every tick.
type Cell struct {
	kind      KindID
	secondary KindID
	lifetime  int64
	updated   bool
}

// Kind returns the cell's primary kind id.
func (c *Cell) Kind() KindID { return c.kind }

// Secondary returns the burning kind for Fire cells. The bool is false for
// every other kind.
func (c *Cell) Secondary() (KindID, bool) {
	if c.kind != Fire {
		return 0, false
	}
	return c.secondary, true
}

// Lifetime returns how many ticks a Fire cell has burned since it last
// changed kind; it is 0 for cells of other kinds.
func (c *Cell) Lifetime() int64 { return c.lifetime }

// Effective returns the kind whose attributes govern the cell: the secondary
// for Fire, the primary otherwise.
func (c *Cell) Effective() KindID {
	if c.kind == Fire {
		return c.secondary
	}
	return c.kind
}

// setKind reinitializes the cell to a non-Fire kind, resetting lifetime.
func (c *Cell) setKind(id KindID) {
	c.kind = id
	c.secondary = 0
	c.lifetime = 0
}

// setFire turns the cell into Fire consuming the given kind.
func (c *Cell) setFire(secondary KindID) {
	c.kind = Fire
	c.secondary = secondary
	c.lifetime = 0
}

func (c *Cell) density() float64 {
	return kinds[c.Effective()].Density
}

func (c *Cell) movable() bool {
	return kinds[c.Effective()].Movable
}
