package game

import "github.com/Garsondee/Zombie-Sense/internal/config"

func cellsFromPoints(pts []config.Point) []Cell {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Cell, len(pts))
	for i, p := range pts {
		out[i] = Cell{Row: p.Row, Col: p.Col}
	}
	return out
}

// NewApocalypseFromScenario builds a simulation from a scenario. seed feeds
// random actor placement; 0 keeps the scenario's own seed.
func NewApocalypseFromScenario(sc *config.Scenario, seed int64) (*Apocalypse, error) {
	zombies, humans, err := sc.Placement(seed)
	if err != nil {
		return nil, err
	}
	return NewApocalypse(sc.Height, sc.Width,
		cellsFromPoints(sc.ObstacleCells()),
		cellsFromPoints(zombies),
		cellsFromPoints(humans))
}
