package fow

// Movement predicates. Each predicate is pure: it inspects the board and
// never mutates it, ignores whose turn it is, and has no concept of check.
// Every branch that does not prove the move legal falls through to an
// explicit reject.

// LegalMove reports whether the piece on from may move to to under the
// current occupancy. It returns false when from is empty, when either
// square is off the board, when from == to, or when the destination holds
// a piece of the mover's own color.
func LegalMove(b *Board, from, to Square) bool {
	if !from.OnBoard() || !to.OnBoard() || from == to {
		return false
	}
	p, ok := b.PieceAt(from)
	if !ok {
		return false
	}
	if !destinationOpen(b, p.Color, to) {
		return false
	}
	switch p.Kind {
	case Pawn:
		return pawnMove(b, p.Color, from, to)
	case Rook:
		return slideMove(b, from, to, true, false)
	case Bishop:
		return slideMove(b, from, to, false, true)
	case Queen:
		return slideMove(b, from, to, true, true)
	case Knight:
		return knightMove(from, to)
	case King:
		return kingMove(from, to)
	}
	return false
}

// destinationOpen reports whether to is empty or enemy-occupied.
func destinationOpen(b *Board, mover Color, to Square) bool {
	target, occupied := b.PieceAt(to)
	return !occupied || target.Color != mover
}

// pathClear reports whether every square strictly between from and to is
// empty. It expects from and to to share a rank, a file, or a diagonal.
func pathClear(b *Board, from, to Square) bool {
	rowStep := sign(to.Row - from.Row)
	colStep := sign(to.Col - from.Col)
	cur := Square{from.Row + rowStep, from.Col + colStep}
	for cur != to {
		if _, occupied := b.PieceAt(cur); occupied {
			return false
		}
		cur = Square{cur.Row + rowStep, cur.Col + colStep}
	}
	return true
}

func sign(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}

func abs(d int) int {
	if d < 0 {
		return -d
	}
	return d
}

// slideMove covers Rook, Bishop, and Queen depending on the allowed line
// shapes. The destination occupancy was already checked by LegalMove.
func slideMove(b *Board, from, to Square, straight, diagonal bool) bool {
	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	isStraight := dRow == 0 || dCol == 0
	isDiagonal := abs(dRow) == abs(dCol)
	if isStraight && !straight {
		return false
	}
	if !isStraight && (!isDiagonal || !diagonal) {
		return false
	}
	return pathClear(b, from, to)
}

func knightMove(from, to Square) bool {
	dRow, dCol := abs(to.Row-from.Row), abs(to.Col-from.Col)
	return (dRow == 2 && dCol == 1) || (dRow == 1 && dCol == 2)
}

func kingMove(from, to Square) bool {
	dRow, dCol := abs(to.Row-from.Row), abs(to.Col-from.Col)
	return dRow <= 1 && dCol <= 1
}

// pawnMove: forward one onto an empty square; forward two from the starting
// rank with both squares empty; one step diagonally forward onto an enemy
// piece. No en passant, no promotion.
func pawnMove(b *Board, mover Color, from, to Square) bool {
	direction := -1 // white advances toward row 0
	startRow := whitePawnRow
	if mover == Black {
		direction = 1
		startRow = blackPawnRow
	}

	dCol := to.Col - from.Col
	if dCol == 0 {
		if _, occupied := b.PieceAt(to); occupied {
			return false
		}
		if to.Row == from.Row+direction {
			return true
		}
		if from.Row == startRow && to.Row == from.Row+2*direction {
			_, blocked := b.PieceAt(Square{from.Row + direction, from.Col})
			return !blocked
		}
		return false
	}

	if abs(dCol) == 1 && to.Row == from.Row+direction {
		target, occupied := b.PieceAt(to)
		return occupied && target.Color != mover
	}
	return false
}
