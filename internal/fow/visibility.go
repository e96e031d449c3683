package fow

// Perspective selects whose eyes a render uses. The audience sees the
// whole board; a side sees its own pieces plus any enemy piece it could
// capture this turn.
type Perspective string

const (
	PerspectiveWhite    Perspective = Perspective(White)
	PerspectiveBlack    Perspective = Perspective(Black)
	PerspectiveAudience Perspective = "audience"
)

// Valid reports whether p is a renderable perspective.
func (p Perspective) Valid() bool {
	return p == PerspectiveWhite || p == PerspectiveBlack || p == PerspectiveAudience
}

// Render cell values that are not piece symbols.
const (
	ObscuredMarker rune = '*' // enemy piece present, identity hidden
	EmptyMarker    rune = ' '
)

// Grid is one rendered frame: a symbol, marker, or blank per square,
// row 0 first (Black's home rank).
type Grid [BoardSize][BoardSize]rune

// Rows returns the grid as strings, one per row, for transport and display.
func (g Grid) Rows() []string {
	rows := make([]string, BoardSize)
	for r := 0; r < BoardSize; r++ {
		rows[r] = string(g[r][:])
	}
	return rows
}

// capturablePositions collects every square holding an enemy piece that at
// least one piece of color side could legally move onto right now. The scan
// is deliberately exhaustive (every friendly piece against all 64 targets):
// the set must reflect the exact current board, so nothing is cached.
func capturablePositions(b *Board, side Color) map[Square]struct{} {
	capturable := make(map[Square]struct{})
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			from := Square{row, col}
			p, ok := b.PieceAt(from)
			if !ok || p.Color != side {
				continue
			}
			for tRow := 0; tRow < BoardSize; tRow++ {
				for tCol := 0; tCol < BoardSize; tCol++ {
					to := Square{tRow, tCol}
					target, occupied := b.PieceAt(to)
					if !occupied || target.Color == side {
						continue
					}
					if LegalMove(b, from, to) {
						capturable[to] = struct{}{}
					}
				}
			}
		}
	}
	return capturable
}

// RenderBoard projects the board for the given perspective. Own pieces and
// capturable enemies render their symbol, other enemy squares render the
// obscured marker, empty squares render blank. The audience sees everything.
func RenderBoard(b *Board, perspective Perspective) Grid {
	var grid Grid

	var capturable map[Square]struct{}
	if perspective != PerspectiveAudience {
		capturable = capturablePositions(b, Color(perspective))
	}

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			sq := Square{row, col}
			p, occupied := b.PieceAt(sq)
			switch {
			case !occupied:
				grid[row][col] = EmptyMarker
			case perspective == PerspectiveAudience:
				grid[row][col] = p.Symbol()
			case p.Color == Color(perspective):
				grid[row][col] = p.Symbol()
			default:
				if _, visible := capturable[sq]; visible {
					grid[row][col] = p.Symbol()
				} else {
					grid[row][col] = ObscuredMarker
				}
			}
		}
	}
	return grid
}
