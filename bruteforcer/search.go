package main

import (
	"fmt"
	"sort"
	"strings"
)

// Move is one rotation command: a piece, a pivot vertex and a direction.
type Move struct {
	Piece     int
	Pivot     Vertex
	Direction string
}

// Solver runs a breadth-first search over board states using a local copy of
// the rotation and fusion rules, so no server round-trips are needed while
// planning. The first solution found is therefore a shortest one.
type Solver struct {
	bounds    Bounds
	immovable map[Tile]bool
	runes     []Tile
	maxDepth  int
	maxStates int
	explored  int
}

func NewSolver(state *BoardState, maxDepth, maxStates int) *Solver {
	s := &Solver{
		bounds:    state.Bounds,
		immovable: make(map[Tile]bool),
		runes:     state.Runes,
		maxDepth:  maxDepth,
		maxStates: maxStates,
	}
	for _, t := range state.Immovables {
		s.immovable[t] = true
	}
	return s
}

// StatesExplored reports how many distinct board states the last Solve call
// visited.
func (s *Solver) StatesExplored() int {
	return s.explored
}

type simPiece struct {
	id    int
	tiles []Tile // sorted
}

type simState struct {
	pieces []simPiece // sorted by id
}

// Solve returns a shortest winning rotation sequence from the given board
// state, or nil if none exists within the depth and state limits.
func (s *Solver) Solve(state *BoardState) []Move {
	start := newSimState(state)
	s.explored = 0

	if s.solved(start) {
		return []Move{}
	}

	type node struct {
		state simState
		moves []Move
	}

	queue := []node{{state: start}}
	visited := map[string]bool{encode(start): true}
	s.explored = 1

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if len(current.moves) >= s.maxDepth {
			continue
		}

		for _, mv := range s.candidateMoves(current.state) {
			next, ok := s.apply(current.state, mv)
			if !ok {
				continue
			}

			key := encode(next)
			if visited[key] {
				continue
			}
			visited[key] = true
			s.explored++

			newMoves := append(append([]Move{}, current.moves...), mv)
			if s.solved(next) {
				return newMoves
			}
			if s.explored >= s.maxStates {
				return nil
			}

			queue = append(queue, node{state: next, moves: newMoves})
		}
	}

	return nil
}

// candidateMoves enumerates every legal-looking rotation: each piece, each
// corner vertex of its footprint, both directions. Legality of the resulting
// footprint is checked in apply.
func (s *Solver) candidateMoves(st simState) []Move {
	var moves []Move
	for _, p := range st.pieces {
		pivots := make(map[Vertex]bool)
		for _, t := range p.tiles {
			for _, c := range corners(t) {
				pivots[c] = true
			}
		}
		ordered := make([]Vertex, 0, len(pivots))
		for v := range pivots {
			ordered = append(ordered, v)
		}
		sort.Slice(ordered, func(i, j int) bool {
			if ordered[i].X != ordered[j].X {
				return ordered[i].X < ordered[j].X
			}
			return ordered[i].Y < ordered[j].Y
		})
		for _, pivot := range ordered {
			for _, dir := range []string{"cw", "ccw"} {
				moves = append(moves, Move{Piece: p.id, Pivot: pivot, Direction: dir})
			}
		}
	}
	return moves
}

// apply performs one rotation on the simulated board. It returns false when
// the rotation would leave the bounds or land on an immovable tile. Pieces
// that touch or overlap the rotated footprint are fused into it, transitively,
// with the smallest id surviving.
func (s *Solver) apply(st simState, mv Move) (simState, bool) {
	idx := -1
	for i, p := range st.pieces {
		if p.id == mv.Piece {
			idx = i
			break
		}
	}
	if idx == -1 {
		return simState{}, false
	}

	moving := st.pieces[idx]
	rotated := make([]Tile, len(moving.tiles))
	for i, t := range moving.tiles {
		rt := rotateTile(t, mv.Pivot, mv.Direction)
		for _, c := range corners(rt) {
			if !s.inBounds(c) {
				return simState{}, false
			}
		}
		if s.immovable[rt] {
			return simState{}, false
		}
		rotated[i] = rt
	}

	footprint := make(map[Tile]bool, len(rotated))
	for _, t := range rotated {
		footprint[t] = true
	}
	survivor := moving.id
	merged := map[int]bool{moving.id: true}

	// Fuse transitively: absorbing a piece can bring the footprint into
	// contact with yet another one.
	for {
		grew := false
		for _, other := range st.pieces {
			if merged[other.id] {
				continue
			}
			if !touches(footprint, other.tiles) {
				continue
			}
			merged[other.id] = true
			if other.id < survivor {
				survivor = other.id
			}
			for _, t := range other.tiles {
				footprint[t] = true
			}
			grew = true
		}
		if !grew {
			break
		}
	}

	next := simState{}
	for _, p := range st.pieces {
		if !merged[p.id] {
			next.pieces = append(next.pieces, p)
		}
	}
	tiles := make([]Tile, 0, len(footprint))
	for t := range footprint {
		tiles = append(tiles, t)
	}
	sortTiles(tiles)
	next.pieces = append(next.pieces, simPiece{id: survivor, tiles: tiles})
	sort.Slice(next.pieces, func(i, j int) bool { return next.pieces[i].id < next.pieces[j].id })

	return next, true
}

func (s *Solver) solved(st simState) bool {
	occupied := make(map[Tile]bool)
	for _, p := range st.pieces {
		for _, t := range p.tiles {
			occupied[t] = true
		}
	}
	for _, r := range s.runes {
		if !occupied[r] {
			return false
		}
	}
	return true
}

func (s *Solver) inBounds(v Vertex) bool {
	return v.X >= s.bounds.MinX && v.X <= s.bounds.MaxX &&
		v.Y >= s.bounds.MinY && v.Y <= s.bounds.MaxY
}

// touches reports whether any of the tiles overlaps or borders the footprint.
func touches(footprint map[Tile]bool, tiles []Tile) bool {
	for _, t := range tiles {
		if footprint[t] {
			return true
		}
		for _, n := range neighbors(t) {
			if footprint[n] {
				return true
			}
		}
	}
	return false
}

func newSimState(state *BoardState) simState {
	st := simState{pieces: make([]simPiece, 0, len(state.Pieces))}
	for _, p := range state.Pieces {
		tiles := append([]Tile{}, p.Tiles...)
		sortTiles(tiles)
		st.pieces = append(st.pieces, simPiece{id: p.ID, tiles: tiles})
	}
	sort.Slice(st.pieces, func(i, j int) bool { return st.pieces[i].id < st.pieces[j].id })
	return st
}

// encode produces a canonical key for the visited set. Piece identity is
// included because which id survives a fusion affects later moves.
func encode(st simState) string {
	var b strings.Builder
	for _, p := range st.pieces {
		fmt.Fprintf(&b, "#%d", p.id)
		for _, t := range p.tiles {
			fmt.Fprintf(&b, "|%s%d,%d", t.Orient, t.Vertex.X, t.Vertex.Y)
		}
	}
	return b.String()
}

func sortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		a, b := tiles[i], tiles[j]
		if a.Vertex.X != b.Vertex.X {
			return a.Vertex.X < b.Vertex.X
		}
		if a.Vertex.Y != b.Vertex.Y {
			return a.Vertex.Y < b.Vertex.Y
		}
		return a.Orient < b.Orient
	})
}

// corners lists the three lattice vertices of a tile. Up triangles span
// {v, v+(1,0), v+(0,1)}, down triangles {v, v+(1,0), v+(1,-1)}.
func corners(t Tile) []Vertex {
	v := t.Vertex
	if t.Orient == "up" {
		return []Vertex{v, {v.X + 1, v.Y}, {v.X, v.Y + 1}}
	}
	return []Vertex{v, {v.X + 1, v.Y}, {v.X + 1, v.Y - 1}}
}

// neighbors lists the three edge-adjacent tiles, always of opposite
// orientation.
func neighbors(t Tile) []Tile {
	v := t.Vertex
	if t.Orient == "up" {
		return []Tile{
			{Vertex: v, Orient: "down"},
			{Vertex: Vertex{v.X - 1, v.Y + 1}, Orient: "down"},
			{Vertex: Vertex{v.X, v.Y + 1}, Orient: "down"},
		}
	}
	return []Tile{
		{Vertex: v, Orient: "up"},
		{Vertex: Vertex{v.X + 1, v.Y - 1}, Orient: "up"},
		{Vertex: Vertex{v.X, v.Y - 1}, Orient: "up"},
	}
}

// rotateTile turns a tile 60 degrees about an anchor vertex. The lattice axes
// are skewed, so a clockwise step maps the offset d to (d.x+d.y, -d.x) and a
// counter-clockwise step maps it to (-d.y, d.x+d.y), with an orientation flip
// and a small correction for the tile's own vertex.
func rotateTile(t Tile, anchor Vertex, dir string) Tile {
	d := Vertex{t.Vertex.X - anchor.X, t.Vertex.Y - anchor.Y}
	if dir == "cw" {
		p := Vertex{anchor.X + d.X + d.Y, anchor.Y - d.X}
		if t.Orient == "up" {
			return Tile{Vertex: p, Orient: "down"}
		}
		return Tile{Vertex: Vertex{p.X, p.Y - 1}, Orient: "up"}
	}
	p := Vertex{anchor.X - d.Y, anchor.Y + d.X + d.Y}
	if t.Orient == "up" {
		return Tile{Vertex: Vertex{p.X - 1, p.Y + 1}, Orient: "down"}
	}
	return Tile{Vertex: p, Orient: "up"}
}
