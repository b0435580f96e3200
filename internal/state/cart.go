package state

import "github.com/roach88/feastverse/internal/domain"

// Cart maps menu-item id to cart line and remembers insertion order.
//
// Order matters: fee and ETA are taken from the first line's restaurant.
// Replacing an existing line keeps its position.
//
// INVARIANT: no line has Qty <= 0.
type Cart struct {
	lines map[string]domain.CartLine
	keys  []string
}

// Get returns the line for a menu-item id.
func (c Cart) Get(menuItemID string) (domain.CartLine, bool) {
	l, ok := c.lines[menuItemID]
	return l, ok
}

// Len is the number of distinct lines.
func (c Cart) Len() int { return len(c.keys) }

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool { return len(c.keys) == 0 }

// Count is the total quantity across lines (the badge number).
func (c Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}

// Lines returns the lines in insertion order.
func (c Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.lines[k])
	}
	return out
}

// First returns the earliest inserted line.
func (c Cart) First() (domain.CartLine, bool) {
	if len(c.keys) == 0 {
		return domain.CartLine{}, false
	}
	return c.lines[c.keys[0]], true
}

// with returns a new cart with line stored under its menu-item id.
func (c Cart) with(line domain.CartLine) Cart {
	key := line.MenuItem.ID
	lines := make(map[string]domain.CartLine, len(c.lines)+1)
	for k, v := range c.lines {
		lines[k] = v
	}
	keys := make([]string, len(c.keys), len(c.keys)+1)
	copy(keys, c.keys)
	if _, exists := lines[key]; !exists {
		keys = append(keys, key)
	}
	lines[key] = line
	return Cart{lines: lines, keys: keys}
}

// without returns a new cart lacking menuItemID.
func (c Cart) without(menuItemID string) Cart {
	lines := make(map[string]domain.CartLine, len(c.lines))
	keys := make([]string, 0, len(c.keys))
	for _, k := range c.keys {
		if k == menuItemID {
			continue
		}
		lines[k] = c.lines[k]
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return Cart{}
	}
	return Cart{lines: lines, keys: keys}
}
