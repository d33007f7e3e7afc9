package shape

import "github.com/hailam/burrsolver/internal/lattice"

// Required lists, for each of the six named slots, the eight grid voxels
// an orientation must cover to be considered a legal seat for that slot.
// These are the puzzle frame's outer-ring voxels and are embedded verbatim
// from the reference implementation; do not "simplify" or regenerate them.
var Required = map[string][]lattice.Voxel{
	"A": {
		{-1, -2, -3}, {-1, -2, -2},
		{0, -2, -3}, {0, -2, -2},
		{-1, -2, 2}, {-1, -2, 1},
		{0, -2, 2}, {0, -2, 1},
	},
	"B": {
		{-3, -1, -2}, {-2, -1, -2},
		{-3, 0, -2}, {-2, 0, -2},
		{2, -1, -2}, {1, -1, -2},
		{2, 0, -2}, {1, 0, -2},
	},
	"C": {
		{-2, -3, -1}, {-2, -2, -1},
		{-2, -3, 0}, {-2, -2, 0},
		{-2, 2, -1}, {-2, 1, -1},
		{-2, 2, 0}, {-2, 1, 0},
	},
	"D": {
		{-3, -1, 1}, {-2, -1, 1},
		{-3, 0, 1}, {-2, 0, 1},
		{2, -1, 1}, {1, -1, 1},
		{2, 0, 1}, {1, 0, 1},
	},
	"E": {
		{1, -3, -1}, {1, -2, -1},
		{1, -3, 0}, {1, -2, 0},
		{1, 2, -1}, {1, 1, -1},
		{1, 2, 0}, {1, 1, 0},
	},
	"F": {
		{-1, 1, -3}, {-1, 1, -2},
		{0, 1, -3}, {0, 1, -2},
		{-1, 1, 2}, {-1, 1, 1},
		{0, 1, 2}, {0, 1, 1},
	},
}
