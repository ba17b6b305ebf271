package world

// visionOffsets are the 4-connected neighbor deltas used without a
// flashlight.
var visionOffsets = [4][2]int{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}

// VisibleTiles computes the set of coordinates observable from pos. Vision
// never crosses a room boundary: only tiles of the room containing pos are
// returned. Without a flashlight the set is pos plus its in-room orthogonal
// neighbors; with one it is the full 3×3 block intersected with the room.
//
// This is a pure function; callers use it to filter which placed items may
// be shown to the player.
//
// Postcondition: Returns an empty set when pos belongs to no room; otherwise
// every returned coordinate is in the room's tile set and includes pos.
func VisibleTiles(idx *Index, pos Coordinate, hasFlashlight bool) map[Coordinate]bool {
	visible := make(map[Coordinate]bool)
	room, ok := idx.RoomAt(pos)
	if !ok {
		return visible
	}
	visible[pos] = true

	if hasFlashlight {
		for dCol := -1; dCol <= 1; dCol++ {
			for dRow := -1; dRow <= 1; dRow++ {
				if c, ok := pos.Offset(dCol, dRow); ok && room.Contains(c) {
					visible[c] = true
				}
			}
		}
		return visible
	}

	for _, off := range visionOffsets {
		if c, ok := pos.Offset(off[0], off[1]); ok && room.Contains(c) {
			visible[c] = true
		}
	}
	return visible
}
