package ui

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, etc. It has optional class and id for CSS matching,
// bounds (position and size), and optional text for labels.
type Node struct {
	Type   string // "panel", "label", etc.
	Class  string // e.g. "card" for .card
	ID     string // e.g. "close" for #close
	Bounds rl.Rectangle
	Text   string // for label-type nodes
	Wrap   bool   // break Text into lines that fit Bounds.Width
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// SetRect places the node on an integer pixel rectangle.
func (n *Node) SetRect(r image.Rectangle) {
	n.Bounds = rectangle(r)
}

func rectangle(r image.Rectangle) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(r.Min.X),
		Y:      float32(r.Min.Y),
		Width:  float32(r.Dx()),
		Height: float32(r.Dy()),
	}
}
