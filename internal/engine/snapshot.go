package engine

// Snapshot captures the complete game state for display and determinism checks.
type Snapshot struct {
	Board   Grid
	Score   int
	Status  Status
	Moves   int
	MaxTile int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:   g.grid,
		Score:   g.score,
		Status:  g.status,
		Moves:   g.moves,
		MaxTile: MaxTile(g.grid),
	}
}
