package engine

import (
	"testing"

	"github.com/framestack/envelope-engine/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		coordI models.Coord
		coordJ models.Coord
		want   models.Orientation
	}{
		{
			name:   "vertical element is a column",
			coordJ: models.Coord{Z: 3},
			want:   models.OrientationColumn,
		},
		{
			name:   "horizontal along x",
			coordJ: models.Coord{X: 5},
			want:   models.OrientationBeamAlongX,
		},
		{
			name:   "horizontal along y",
			coordJ: models.Coord{Y: 5},
			want:   models.OrientationBeamAlongY,
		},
		{
			name:   "diagonal beam leans toward x",
			coordJ: models.Coord{X: 3, Y: 1},
			want:   models.OrientationBeamAlongX,
		},
		{
			name:   "exact dx dy tie resolves to x",
			coordJ: models.Coord{X: 2, Y: 2},
			want:   models.OrientationBeamAlongX,
		},
		{
			name:   "leaning column stays a column",
			coordJ: models.Coord{X: 0.5, Z: 3},
			want:   models.OrientationColumn,
		},
		{
			name:   "steep diagonal below the ratio is a beam",
			coordJ: models.Coord{X: 3, Z: 2},
			want:   models.OrientationBeamAlongX,
		},
		{
			name:   "direction does not matter",
			coordI: models.Coord{Z: 3},
			want:   models.OrientationColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.coordI, tt.coordJ); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
