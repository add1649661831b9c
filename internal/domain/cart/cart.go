package cart

import "time"

// Key identifies a cart line. Two adds with the same product, size and
// color merge into one line instead of appending.
type Key struct {
	ProductID int64
	Size      string
	Color     string
}

// Line is one (product, size, color) entry in a session cart. Name, price
// and image are display snapshots taken when the line was added; checkout
// re-resolves them against the live catalog.
type Line struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

// Cart holds the ordered line sequence for one session.
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []Line{}}
}

func (c *Cart) Count() int {
	return len(c.Lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) find(k Key) int {
	for i, line := range c.Lines {
		if line.Key() == k {
			return i
		}
	}
	return -1
}

// Merge adds line to the cart. An existing line with the same key has its
// quantity incremented; otherwise the line is appended.
func (c *Cart) Merge(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if i := c.find(line.Key()); i >= 0 {
		c.Lines[i].Quantity += line.Quantity
		return
	}
	c.Lines = append(c.Lines, line)
}

// Remove deletes the line matching k. It returns false when no line
// matches.
func (c *Cart) Remove(k Key) bool {
	i := c.find(k)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

// SetQuantity overwrites the quantity of the line matching k. A quantity
// of zero or less removes the line. It returns false when no line matches.
func (c *Cart) SetQuantity(k Key, quantity int64) bool {
	i := c.find(k)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return true
	}
	c.Lines[i].Quantity = quantity
	return true
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (c *Cart) Clear() {
	c.Lines = c.Lines[:0]
}
