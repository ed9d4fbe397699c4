package engine

import "sort"

// classify is the result of checking a candidate footprint against the board.
type classify struct {
	reject  bool
	reason  RejectReason
	touched []PieceID // foreign pieces to fuse with, ascending, deduplicated
}

// classifyCandidate checks every cell of the candidate footprint, excluding
// the rotating piece's own cells. Immovables and out-of-bounds cells reject
// the rotation; runes never collide. Foreign ruby pieces found either under
// the candidate or sharing an edge with it are collected for fusion. All
// occupants of a cell are considered, so editor-stacked tiles behave
// deterministically.
func (b *Board) classifyCandidate(self *Piece, candidate []TileCoord) classify {
	touched := make(map[PieceID]bool)

	inCandidate := func(t TileCoord) bool {
		for _, c := range candidate {
			if c == t {
				return true
			}
		}
		return false
	}

	for _, t := range candidate {
		if !b.InBounds(t) {
			return classify{reject: true, reason: RejectOutOfBounds}
		}
		for _, o := range b.OccupantsAt(t) {
			switch o.Kind {
			case Immovable:
				return classify{reject: true, reason: RejectBlocked}
			case Ruby:
				if id, ok := b.Resolve(o.Piece); ok && id != self.ID {
					touched[id] = true
				}
			}
		}
	}

	// Touching fuses just like overlapping: scan the candidate's edge
	// neighbors for foreign rubies. Cells the candidate itself will occupy
	// were already handled above.
	for _, t := range candidate {
		for _, n := range t.Neighbors() {
			if inCandidate(n) {
				continue
			}
			for _, o := range b.OccupantsAt(n) {
				if o.Kind != Ruby {
					continue
				}
				if id, ok := b.Resolve(o.Piece); ok && id != self.ID {
					touched[id] = true
				}
			}
		}
	}

	ids := make([]PieceID, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return classify{touched: ids}
}

// rotatePiece executes a rotation command against the board: speculative
// geometry, collision classification, then either a no-op rejection, a plain
// move, or a move followed by transitive fusion of every touched piece.
// Fusion is order-independent because the touched set is computed up front
// from the final candidate footprint and all ids collapse to the minimum.
func (b *Board) rotatePiece(id PieceID, pivot VertexCoord, dir RotationDirection) (*RotateOutcome, error) {
	piece, err := b.Piece(id)
	if err != nil {
		return nil, err
	}
	if !dir.Valid() {
		return nil, ErrInvalidArgument
	}
	if !piece.HasCorner(pivot) {
		return nil, ErrInvalidPivot
	}

	candidate := RotateFootprint(piece.Tiles, pivot, dir)

	cls := b.classifyCandidate(piece, candidate)
	if cls.reject {
		return &RotateOutcome{Rejected: true, Reason: cls.reason, Piece: piece.ID}, nil
	}

	if err := b.MovePiece(piece.ID, candidate); err != nil {
		return nil, err
	}

	surviving := piece.ID
	absorbed := make([]PieceID, 0, len(cls.touched))
	for _, other := range cls.touched {
		merged, err := b.Absorb(surviving, other)
		if err != nil {
			return nil, err
		}
		if surviving > merged {
			absorbed = append(absorbed, surviving)
		} else {
			absorbed = append(absorbed, other)
		}
		surviving = merged
	}
	sort.Slice(absorbed, func(i, j int) bool { return absorbed[i] < absorbed[j] })

	final, err := b.Piece(surviving)
	if err != nil {
		return nil, err
	}

	return &RotateOutcome{
		Piece:     surviving,
		Absorbed:  absorbed,
		Footprint: append([]TileCoord(nil), final.Tiles...),
	}, nil
}
