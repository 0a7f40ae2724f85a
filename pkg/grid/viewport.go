package grid

// DimensionsFor returns how many whole cells of cellSize fit into a
// viewW×viewH viewport. Each side is at least 1 so the result is always a
// valid session size; cellSize must be positive.
func DimensionsFor(viewW, viewH, cellSize float64) (width, height int) {
	width = max(1, int(viewW/cellSize))
	height = max(1, int(viewH/cellSize))
	return width, height
}
