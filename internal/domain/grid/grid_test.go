package grid_test

import (
	"testing"

	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b grid.Point
		want int
	}{
		{name: "same point", a: grid.Point{X: 3, Y: 3}, b: grid.Point{X: 3, Y: 3}, want: 0},
		{name: "vertical", a: grid.Point{X: 2, Y: 2}, b: grid.Point{X: 2, Y: 5}, want: 3},
		{name: "even column neighbour", a: grid.Point{X: 2, Y: 2}, b: grid.Point{X: 3, Y: 2}, want: 1},
		{name: "odd column neighbour below", a: grid.Point{X: 3, Y: 2}, b: grid.Point{X: 4, Y: 3}, want: 1},
		{name: "two columns", a: grid.Point{X: 0, Y: 0}, b: grid.Point{X: 2, Y: 0}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, grid.Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, grid.Distance(tt.b, tt.a))
		})
	}
}

func TestWithinRadius(t *testing.T) {
	center := grid.Point{X: 5, Y: 5}

	assert.Equal(t, []grid.Point{center}, grid.WithinRadius(center, 0))
	assert.Len(t, grid.WithinRadius(center, 1), 7)
	assert.Len(t, grid.WithinRadius(center, 2), 19)
	assert.Nil(t, grid.WithinRadius(center, -1))

	for _, p := range grid.WithinRadius(center, 2) {
		assert.LessOrEqual(t, grid.Distance(center, p), 2)
	}
}

func TestWithinRadius_DropsNegative(t *testing.T) {
	points := grid.WithinRadius(grid.Point{X: 0, Y: 0}, 1)
	for _, p := range points {
		assert.True(t, p.Valid(), p.String())
	}
	assert.Less(t, len(points), 7)
}
