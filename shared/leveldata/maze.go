package leveldata

import (
	"fmt"

	"github.com/automoto/hoverrace-mp/shared/level"
)

// Maze builds a fresh collision level from the track. Every race gets its
// own maze since permanent elements move during play.
func (t *Track) Maze() (*level.Maze, error) {
	m, err := level.NewMaze(t.Rooms, t.Gravity)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", t.Name, err)
	}
	for _, w := range t.Walls {
		m.AddObstacle(w.Polygon())
	}
	for _, z := range t.Zones {
		m.AddZone(z.Polygon(), z.Effect)
	}
	for _, e := range t.Elements {
		if _, err := m.AddPermElement(e.ID, e.Kind, e.Room, e.Pos); err != nil {
			return nil, fmt.Errorf("track %s: %w", t.Name, err)
		}
	}
	return m, nil
}
