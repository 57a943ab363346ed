// Package coverflow lays out and animates a row of cards in the cover flow
// pattern: the selected card faces the viewer, the others recede to either side
// rotated by 45 degrees.
//
// A Carousel owns the selected index, the slider value and every Card. Input
// (slider value, wheel deltas, key steps) goes through the Carousel, which
// computes each card's target with the Layout and hands it to the Driver. The
// render loop calls Update once per frame; nothing here blocks or spawns
// goroutines.
package coverflow
