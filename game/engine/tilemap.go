package engine

// VertexCoord addresses a vertex of the triangle grid. X points toward the
// viewport right and Y toward the upper right, so the axes are skewed by 60
// degrees rather than orthogonal.
type VertexCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the component-wise sum of two vertex coordinates.
func (v VertexCoord) Add(o VertexCoord) VertexCoord {
	return VertexCoord{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of two vertex coordinates.
func (v VertexCoord) Sub(o VertexCoord) VertexCoord {
	return VertexCoord{X: v.X - o.X, Y: v.Y - o.Y}
}

// TriangleOrient distinguishes the two triangle halves of a grid rhombus.
type TriangleOrient string

const (
	PointingUp   TriangleOrient = "up"
	PointingDown TriangleOrient = "down"
)

// Valid reports whether the orientation is one of the two known values.
func (o TriangleOrient) Valid() bool {
	return o == PointingUp || o == PointingDown
}

// TileCoord describes a single triangle cell: its left vertex and whether the
// triangle points up or down. An up-pointing triangle at v has its remaining
// corners at v+(1,0) and v+(0,1); a down-pointing one at v+(1,0) and v+(1,-1).
type TileCoord struct {
	Vertex VertexCoord    `json:"vertex"`
	Orient TriangleOrient `json:"orient"`
}

// RotationDirection selects the sense of a sixth-turn rotation.
// Counter-clockwise corresponds to a left input, clockwise to a right input.
type RotationDirection string

const (
	Clockwise        RotationDirection = "cw"
	CounterClockwise RotationDirection = "ccw"
)

// Valid reports whether the direction is one of the two known values.
func (d RotationDirection) Valid() bool {
	return d == Clockwise || d == CounterClockwise
}

// RotatedClockwise returns the tile after a sixth turn clockwise about anchor.
// The integer rotation matrix has columns (1,-1) and (1,0); orientation flips
// on every step, and down-pointing tiles additionally shift by -Y.
func (t TileCoord) RotatedClockwise(anchor VertexCoord) TileCoord {
	d := t.Vertex.Sub(anchor)
	p := anchor.Add(VertexCoord{X: d.X + d.Y, Y: -d.X})

	if t.Orient == PointingDown {
		return TileCoord{Vertex: VertexCoord{X: p.X, Y: p.Y - 1}, Orient: PointingUp}
	}
	return TileCoord{Vertex: p, Orient: PointingDown}
}

// RotatedCounterClockwise returns the tile after a sixth turn counter-clockwise
// about anchor. Inverse of RotatedClockwise.
func (t TileCoord) RotatedCounterClockwise(anchor VertexCoord) TileCoord {
	d := t.Vertex.Sub(anchor)
	p := anchor.Add(VertexCoord{X: -d.Y, Y: d.X + d.Y})

	if t.Orient == PointingUp {
		return TileCoord{Vertex: VertexCoord{X: p.X - 1, Y: p.Y + 1}, Orient: PointingDown}
	}
	return TileCoord{Vertex: p, Orient: PointingUp}
}

// Rotated returns the tile after one sixth turn about anchor in the given
// direction.
func (t TileCoord) Rotated(anchor VertexCoord, dir RotationDirection) TileCoord {
	if dir == Clockwise {
		return t.RotatedClockwise(anchor)
	}
	return t.RotatedCounterClockwise(anchor)
}

// Neighbors returns the three triangles sharing an edge with t.
func (t TileCoord) Neighbors() [3]TileCoord {
	v := t.Vertex
	if t.Orient == PointingUp {
		return [3]TileCoord{
			{Vertex: v, Orient: PointingDown},
			{Vertex: VertexCoord{X: v.X - 1, Y: v.Y + 1}, Orient: PointingDown},
			{Vertex: VertexCoord{X: v.X, Y: v.Y + 1}, Orient: PointingDown},
		}
	}
	return [3]TileCoord{
		{Vertex: v, Orient: PointingUp},
		{Vertex: VertexCoord{X: v.X + 1, Y: v.Y - 1}, Orient: PointingUp},
		{Vertex: VertexCoord{X: v.X, Y: v.Y - 1}, Orient: PointingUp},
	}
}

// Corners returns the three vertices of the triangle. These are the legal
// rotation pivots for any piece whose footprint contains this tile.
func (t TileCoord) Corners() [3]VertexCoord {
	v := t.Vertex
	if t.Orient == PointingUp {
		return [3]VertexCoord{v, {X: v.X + 1, Y: v.Y}, {X: v.X, Y: v.Y + 1}}
	}
	return [3]VertexCoord{v, {X: v.X + 1, Y: v.Y}, {X: v.X + 1, Y: v.Y - 1}}
}

// HasCorner reports whether vertex is one of the triangle's three corners.
func (t TileCoord) HasCorner(vertex VertexCoord) bool {
	for _, c := range t.Corners() {
		if c == vertex {
			return true
		}
	}
	return false
}

// Bounds limits the playable region in vertex coordinates, inclusive on all
// sides. A tile is inside iff all three of its corners are inside.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// DefaultBounds covers roughly the visible grid of the original 1280x720
// playfield.
func DefaultBounds() Bounds {
	return Bounds{MinX: -8, MinY: -5, MaxX: 8, MaxY: 5}
}

// ContainsVertex reports whether the vertex lies within the bounds.
func (b Bounds) ContainsVertex(v VertexCoord) bool {
	return v.X >= b.MinX && v.X <= b.MaxX && v.Y >= b.MinY && v.Y <= b.MaxY
}

// ContainsTile reports whether the whole triangle lies within the bounds.
func (b Bounds) ContainsTile(t TileCoord) bool {
	for _, c := range t.Corners() {
		if !b.ContainsVertex(c) {
			return false
		}
	}
	return true
}

// RotateFootprint returns the footprint obtained by rotating every tile one
// sixth turn about pivot. It is pure and total: no board state is consulted
// and the result is always a well-formed set of tiles. Callers are expected
// to validate the pivot against the owning piece separately.
func RotateFootprint(footprint []TileCoord, pivot VertexCoord, dir RotationDirection) []TileCoord {
	rotated := make([]TileCoord, len(footprint))
	for i, tile := range footprint {
		rotated[i] = tile.Rotated(pivot, dir)
	}
	return rotated
}
