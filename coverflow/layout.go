package coverflow

import "github.com/go-gl/mathgl/mgl32"

// Layout holds the geometry of the cover flow row.
type Layout struct {
	// MarginX is the horizontal distance between neighbouring cards.
	MarginX float32
	// ItemWidth and ItemHeight are the card plane size.
	ItemWidth  float32
	ItemHeight float32
	// SideShift pushes side cards away from the centre by ItemWidth*SideShift.
	SideShift float32
	// DepthStep is the extra depth per index of distance from the selection.
	DepthStep float32
	// SideAngle is the Y rotation of side cards in radians.
	SideAngle float32
}

// DefaultLayout returns the classic 256px card layout.
func DefaultLayout() Layout {
	return Layout{
		MarginX:    80,
		ItemWidth:  256,
		ItemHeight: 256,
		SideShift:  0.6,
		DepthStep:  10,
		SideAngle:  mgl32.DegToRad(45),
	}
}

// Target is where a card should come to rest.
//
// Z is a depth: zero for the selected card, growing into the screen. Cards are
// placed at world Z = -Z.
type Target struct {
	X    float32
	Z    float32
	RotY float32
}

// ComputeTarget returns the resting transform of card cardIndex when
// selectedIndex is centred.
func (l Layout) ComputeTarget(cardIndex, selectedIndex int) Target {
	d := cardIndex - selectedIndex
	x := l.MarginX * float32(d)
	switch {
	case d < 0:
		return Target{
			X:    x - l.ItemWidth*l.SideShift,
			Z:    l.ItemWidth + l.DepthStep*float32(-d),
			RotY: l.SideAngle,
		}
	case d > 0:
		return Target{
			X:    x + l.ItemWidth*l.SideShift,
			Z:    l.ItemWidth + l.DepthStep*float32(d),
			RotY: -l.SideAngle,
		}
	default:
		return Target{}
	}
}
