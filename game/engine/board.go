package engine

import (
	"sort"

	"github.com/kamstrup/intmap"
)

// Piece is a ruby clump: one or more triangle tiles that move as a rigid
// body. Pieces only ever grow; two pieces that touch are fused and the
// smaller id survives.
type Piece struct {
	ID    PieceID
	Tiles []TileCoord
}

// HasTile reports whether the tile belongs to the piece's footprint.
func (p *Piece) HasTile(t TileCoord) bool {
	for _, tile := range p.Tiles {
		if tile == t {
			return true
		}
	}
	return false
}

// HasCorner reports whether the vertex is a corner of any tile of the piece.
func (p *Piece) HasCorner(v VertexCoord) bool {
	for _, tile := range p.Tiles {
		if tile.HasCorner(v) {
			return true
		}
	}
	return false
}

// Board owns the authoritative placement of all tiles. Each cell maps to a
// stack of occupants: during normal play the stack holds at most one ruby or
// immovable (plus possibly the rune underneath), but the editor is allowed to
// stack tiles arbitrarily and the board must tolerate that.
//
// Ruby pieces live in an arena keyed by integer id. Absorbed ids are kept in
// a redirect table so stale references resolve to the surviving piece without
// walking any object graph.
type Board struct {
	bounds   Bounds
	cells    map[TileCoord][]Occupant
	pieces   *intmap.Map[PieceID, *Piece]
	redirect *intmap.Map[PieceID, PieceID]
	live     []PieceID // sorted ids of non-absorbed pieces
	runes    map[TileCoord]bool
	nextID   PieceID
}

// NewBoard creates an empty board with the given bounds.
func NewBoard(bounds Bounds) *Board {
	return &Board{
		bounds:   bounds,
		cells:    make(map[TileCoord][]Occupant),
		pieces:   intmap.New[PieceID, *Piece](64),
		redirect: intmap.New[PieceID, PieceID](64),
		runes:    make(map[TileCoord]bool),
		nextID:   1,
	}
}

// Bounds returns the playable region of the board.
func (b *Board) Bounds() Bounds {
	return b.bounds
}

// InBounds reports whether the tile lies fully inside the playable region.
func (b *Board) InBounds(t TileCoord) bool {
	return b.bounds.ContainsTile(t)
}

// OccupantsAt returns the occupancy stack of a cell. The returned slice is
// owned by the board and must not be mutated.
func (b *Board) OccupantsAt(t TileCoord) []Occupant {
	return b.cells[t]
}

// SpawnPiece creates a new ruby piece from the given tiles and installs its
// occupants. No collision check is performed; callers on the gameplay path
// are expected to have validated the footprint.
func (b *Board) SpawnPiece(tiles ...TileCoord) PieceID {
	id := b.nextID
	b.nextID++

	piece := &Piece{ID: id, Tiles: append([]TileCoord(nil), tiles...)}
	b.pieces.Put(id, piece)
	b.insertLive(id)

	for _, t := range tiles {
		b.addOccupant(t, Occupant{Kind: Ruby, Piece: id})
	}
	return id
}

// PlaceImmovable installs an immovable tile. Editor path: no collision check.
func (b *Board) PlaceImmovable(t TileCoord) {
	b.addOccupant(t, Occupant{Kind: Immovable})
}

// PlaceRune installs a rune tile. Editor path: no collision check.
func (b *Board) PlaceRune(t TileCoord) {
	b.addOccupant(t, Occupant{Kind: Rune})
	b.runes[t] = true
}

// Resolve follows the redirect table until it reaches a live piece id.
// Chains are compressed on the way out so later lookups stay O(1).
func (b *Board) Resolve(id PieceID) (PieceID, bool) {
	cur := id
	for {
		if _, ok := b.pieces.Get(cur); ok {
			break
		}
		next, ok := b.redirect.Get(cur)
		if !ok {
			return NoPiece, false
		}
		cur = next
	}
	if cur != id {
		b.redirect.Put(id, cur)
	}
	return cur, true
}

// Piece returns the live piece for id, resolving absorbed ids.
func (b *Board) Piece(id PieceID) (*Piece, error) {
	resolved, ok := b.Resolve(id)
	if !ok {
		return nil, ErrPieceNotFound
	}
	piece, ok := b.pieces.Get(resolved)
	if !ok {
		return nil, ErrPieceNotFound
	}
	return piece, nil
}

// PieceIDs returns the ids of all live pieces in ascending order.
func (b *Board) PieceIDs() []PieceID {
	return append([]PieceID(nil), b.live...)
}

// MovePiece replaces the piece's footprint with newTiles, transferring cell
// ownership. The caller has already validated the destination.
func (b *Board) MovePiece(id PieceID, newTiles []TileCoord) error {
	piece, err := b.Piece(id)
	if err != nil {
		return err
	}

	for _, t := range piece.Tiles {
		b.removeOccupant(t, piece.ID)
	}
	piece.Tiles = append(piece.Tiles[:0], newTiles...)
	for _, t := range piece.Tiles {
		b.addOccupant(t, Occupant{Kind: Ruby, Piece: piece.ID})
	}
	return nil
}

// Absorb fuses two pieces into one. The lower id survives so references stay
// deterministic; the loser's id is redirected and its tiles transfer to the
// survivor. Absorb is irreversible: nothing ever splits a piece again.
func (b *Board) Absorb(a, c PieceID) (PieceID, error) {
	pa, err := b.Piece(a)
	if err != nil {
		return NoPiece, err
	}
	pc, err := b.Piece(c)
	if err != nil {
		return NoPiece, err
	}
	if pa.ID == pc.ID {
		return pa.ID, nil
	}

	winner, loser := pa, pc
	if loser.ID < winner.ID {
		winner, loser = loser, winner
	}

	// Footprints union: a cell covered by both pieces ends up owned once.
	for _, t := range loser.Tiles {
		b.removeOccupant(t, loser.ID)
		if !winner.HasTile(t) {
			b.addOccupant(t, Occupant{Kind: Ruby, Piece: winner.ID})
			winner.Tiles = append(winner.Tiles, t)
		}
	}

	b.pieces.Del(loser.ID)
	b.removeLive(loser.ID)
	b.redirect.Put(loser.ID, winner.ID)

	return winner.ID, nil
}

// RuneTiles returns all rune cells in a stable order.
func (b *Board) RuneTiles() []TileCoord {
	tiles := make([]TileCoord, 0, len(b.runes))
	for t := range b.runes {
		tiles = append(tiles, t)
	}
	sortTiles(tiles)
	return tiles
}

// ImmovableTiles returns all immovable cells in a stable order.
func (b *Board) ImmovableTiles() []TileCoord {
	var tiles []TileCoord
	for t, occs := range b.cells {
		for _, o := range occs {
			if o.Kind == Immovable {
				tiles = append(tiles, t)
			}
		}
	}
	sortTiles(tiles)
	return tiles
}

// HasRubyAt reports whether any ruby occupant covers the cell.
func (b *Board) HasRubyAt(t TileCoord) bool {
	for _, o := range b.cells[t] {
		if o.Kind == Ruby {
			return true
		}
	}
	return false
}

func (b *Board) addOccupant(t TileCoord, o Occupant) {
	b.cells[t] = append(b.cells[t], o)
}

// removeOccupant deletes the ruby occupant of the given piece from the cell.
// Other occupants of the cell (runes, editor-stacked tiles) are untouched.
func (b *Board) removeOccupant(t TileCoord, id PieceID) {
	occs := b.cells[t]
	for i, o := range occs {
		if o.Kind == Ruby && o.Piece == id {
			occs = append(occs[:i], occs[i+1:]...)
			break
		}
	}
	if len(occs) == 0 {
		delete(b.cells, t)
	} else {
		b.cells[t] = occs
	}
}

func (b *Board) insertLive(id PieceID) {
	i := sort.Search(len(b.live), func(i int) bool { return b.live[i] >= id })
	b.live = append(b.live, 0)
	copy(b.live[i+1:], b.live[i:])
	b.live[i] = id
}

func (b *Board) removeLive(id PieceID) {
	i := sort.Search(len(b.live), func(i int) bool { return b.live[i] >= id })
	if i < len(b.live) && b.live[i] == id {
		b.live = append(b.live[:i], b.live[i+1:]...)
	}
}

// sortTiles orders tiles by vertex then orientation, giving deterministic
// snapshots and level documents.
func sortTiles(tiles []TileCoord) {
	sort.Slice(tiles, func(i, j int) bool {
		a, b := tiles[i], tiles[j]
		if a.Vertex.Y != b.Vertex.Y {
			return a.Vertex.Y < b.Vertex.Y
		}
		if a.Vertex.X != b.Vertex.X {
			return a.Vertex.X < b.Vertex.X
		}
		return a.Orient == PointingUp && b.Orient == PointingDown
	})
}
