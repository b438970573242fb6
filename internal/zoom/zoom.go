// Package zoom maps zoom levels to the vertical size of the schedule grid.
package zoom

import "github.com/conference-hall/hall/internal/timeslot"

// GapPx is the vertical gap left between stacked session blocks.
const GapPx = 2

// MaxLevel is the most zoomed-in level.
const MaxLevel = 3

// DefaultLevel is the level a board opens at.
const DefaultLevel = 1

// heights is the pixel height of one 5-minute interval at each level.
var heights = [MaxLevel + 1]int{8, 12, 16, 20}

// rowMinutes is how many minutes one terminal row covers at each level.
var rowMinutes = [MaxLevel + 1]int{30, 15, 10, 5}

// Clamp returns level bounded to [0, MaxLevel].
func Clamp(level int) int {
	return max(0, min(level, MaxLevel))
}

// HeightOf returns the pixel height of one slot interval at level.
func HeightOf(level int) int {
	return heights[Clamp(level)]
}

// BlockHeight returns the pixel height of a block covering slot at level.
func BlockHeight(level int, slot timeslot.Timeslot) int {
	return HeightOf(level)*timeslot.IntervalsCount(slot, timeslot.Interval) - GapPx
}

// RowMinutes returns the minutes represented by one terminal row at level.
func RowMinutes(level int) int {
	return rowMinutes[Clamp(level)]
}

// SlotsPerRow returns the number of slot intervals folded into one terminal row.
func SlotsPerRow(level int) int {
	return RowMinutes(level) / int(timeslot.Interval.Minutes())
}

// Zoom is the zoom state of a board.
type Zoom struct {
	level int
}

// New returns a Zoom at level, clamped.
func New(level int) Zoom {
	return Zoom{level: Clamp(level)}
}

// Level returns the current level.
func (z Zoom) Level() int {
	return z.level
}

// In returns the next zoomed-in state. It is a no-op at MaxLevel.
func (z Zoom) In() Zoom {
	return New(z.level + 1)
}

// Out returns the next zoomed-out state. It is a no-op at level 0.
func (z Zoom) Out() Zoom {
	return New(z.level - 1)
}

// HeightOf returns the pixel height of one slot interval at the current level.
func (z Zoom) HeightOf() int {
	return HeightOf(z.level)
}

// BlockHeight returns the pixel height of a block covering slot at the current level.
func (z Zoom) BlockHeight(slot timeslot.Timeslot) int {
	return BlockHeight(z.level, slot)
}

// RowMinutes returns the minutes per terminal row at the current level.
func (z Zoom) RowMinutes() int {
	return RowMinutes(z.level)
}
