// Package cell implements the typed container that ties a set of sealed
// payloads to an immutable cell identity. It performs no cryptography —
// isolation between cells is enforced entirely by key derivation in
// internal/stack, keyed on the CellId string a Cell merely carries.
package cell

import (
	"hexvault/errs"
	"hexvault/internal/layer"
)

// Payload is the stored unit inside a cell: ciphertext plus the layer it
// was sealed through, which peel needs to know how many layers to strip.
type Payload struct {
	Data     []byte
	SealedAt layer.Layer
}

// Cell is an isolated encryption domain identified by an opaque id.
type Cell struct {
	id       string
	names    []string // insertion order, for deterministic iteration
	payloads map[string]Payload
}

// New returns an empty cell with the given id.
func New(id string) *Cell {
	return &Cell{id: id, payloads: make(map[string]Payload)}
}

// ID returns the cell's identifier.
func (c *Cell) ID() string { return c.id }

// Insert adds a payload under name, failing if the name is already taken.
func (c *Cell) Insert(name string, p Payload) error {
	if _, exists := c.payloads[name]; exists {
		return errs.New(errs.DuplicatePayload, name)
	}
	c.payloads[name] = p
	c.names = append(c.names, name)
	return nil
}

// Get returns the payload stored under name.
func (c *Cell) Get(name string) (Payload, error) {
	p, ok := c.payloads[name]
	if !ok {
		return Payload{}, errs.New(errs.PayloadNotFound, name)
	}
	return p, nil
}

// Remove deletes and returns the payload stored under name.
func (c *Cell) Remove(name string) (Payload, error) {
	p, ok := c.payloads[name]
	if !ok {
		return Payload{}, errs.New(errs.PayloadNotFound, name)
	}
	delete(c.payloads, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	return p, nil
}

// Contains reports whether name is present.
func (c *Cell) Contains(name string) bool {
	_, ok := c.payloads[name]
	return ok
}

// Names returns payload names in insertion order.
func (c *Cell) Names() []string {
	return append([]string(nil), c.names...)
}
