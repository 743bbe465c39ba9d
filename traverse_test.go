package pathlength_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/twpayne/go-pathlength"
)

func TestTraverse(t *testing.T) {
	for _, tc := range []struct {
		name     string
		start    pathlength.Position
		end      pathlength.Position
		expected []pathlength.Position
	}{
		{
			name:  "degenerate",
			start: pathlength.Position{X: 1, Y: 1},
			end:   pathlength.Position{X: 1, Y: 1},
		},
		{
			name:  "horizontal",
			start: pathlength.Position{X: 0, Y: 0},
			end:   pathlength.Position{X: 3, Y: 0},
			expected: []pathlength.Position{
				{X: 1, Y: 0},
				{X: 2, Y: 0},
			},
		},
		{
			name:  "horizontal_reverse",
			start: pathlength.Position{X: 3, Y: 2},
			end:   pathlength.Position{X: 0, Y: 2},
			expected: []pathlength.Position{
				{X: 2, Y: 2},
				{X: 1, Y: 2},
			},
		},
		{
			name:  "vertical",
			start: pathlength.Position{X: 0, Y: 0},
			end:   pathlength.Position{X: 0, Y: 3},
			expected: []pathlength.Position{
				{X: 0, Y: 1},
				{X: 0, Y: 2},
			},
		},
		{
			name:  "diagonal",
			start: pathlength.Position{X: 0, Y: 0},
			end:   pathlength.Position{X: 2, Y: 2},
			expected: []pathlength.Position{
				{X: 1, Y: 1},
			},
		},
		{
			name:  "fractional",
			start: pathlength.Position{X: 0.5, Y: 0.5},
			end:   pathlength.Position{X: 2.5, Y: 1.5},
			expected: []pathlength.Position{
				{X: 1, Y: 0.75},
				{X: 1.5, Y: 1},
				{X: 2, Y: 1.25},
			},
		},
		{
			name:  "fractional_reverse",
			start: pathlength.Position{X: 2.5, Y: 1.5},
			end:   pathlength.Position{X: 0.5, Y: 0.5},
			expected: []pathlength.Position{
				{X: 2, Y: 1.25},
				{X: 1.5, Y: 1},
				{X: 1, Y: 0.75},
			},
		},
		{
			name:  "integer_start_negative_x",
			start: pathlength.Position{X: 2, Y: 0},
			end:   pathlength.Position{X: 0, Y: 1},
			expected: []pathlength.Position{
				{X: 1, Y: 0.5},
			},
		},
		{
			name:  "within_cell",
			start: pathlength.Position{X: 0.25, Y: 0.25},
			end:   pathlength.Position{X: 0.75, Y: 0.5},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual := slices.Collect(pathlength.Traverse(tc.start, tc.end))
			assert.Equal(t, "", cmp.Diff(tc.expected, actual, cmpopts.EquateApprox(0, 1e-12), cmpopts.EquateEmpty()))
		})
	}
}

func TestTraverse_Break(t *testing.T) {
	var actual []pathlength.Position
	for p := range pathlength.Traverse(pathlength.Position{X: 0, Y: 0}, pathlength.Position{X: 10, Y: 0}) {
		actual = append(actual, p)
		if len(actual) == 2 {
			break
		}
	}
	assert.Equal(t, []pathlength.Position{{X: 1, Y: 0}, {X: 2, Y: 0}}, actual)
}

func TestTraverse_Random(t *testing.T) {
	r := rand.New(rand.NewPCG(0, 0))
	for i := range 1024 {
		start := randomPosition(r, 64, 64)
		end := randomPosition(r, 64, 64)
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			ray := pathlength.NewRay(start, end)
			prevDistance := 0.0
			count := 0
			for p := range pathlength.Traverse(start, end) {
				count++
				assert.True(t, p.X == math.Trunc(p.X) || p.Y == math.Trunc(p.Y), "%v not on a boundary", p)
				assert.True(t, math.Min(start.X, end.X)-1e-9 <= p.X && p.X <= math.Max(start.X, end.X)+1e-9)
				assert.True(t, math.Min(start.Y, end.Y)-1e-9 <= p.Y && p.Y <= math.Max(start.Y, end.Y)+1e-9)
				distance := math.Hypot(p.X-start.X, p.Y-start.Y)
				assert.True(t, distance > prevDistance, "%v not after previous crossing", p)
				assert.True(t, distance < ray.Length)
				prevDistance = distance
			}
			maxCrossings := int(math.Abs(end.X-start.X)+math.Abs(end.Y-start.Y)) + 2
			assert.True(t, count <= maxCrossings)
		})
	}
}

func TestRay(t *testing.T) {
	ray := pathlength.NewRay(pathlength.Position{X: 1, Y: 1}, pathlength.Position{X: 4, Y: 5})
	assert.False(t, ray.Degenerate())
	assert.Equal(t, 5.0, ray.Length)
	assert.Equal(t, pathlength.Position{X: 0.6, Y: 0.8}, ray.Dir)

	assert.True(t, pathlength.NewRay(pathlength.Position{X: 2, Y: 3}, pathlength.Position{X: 2, Y: 3}).Degenerate())
}

// randomPosition returns a random position within a width x height grid,
// snapped to integers or halves some of the time.
func randomPosition(r *rand.Rand, width, height int) pathlength.Position {
	switch r.IntN(3) {
	case 0:
		return pathlength.Position{X: float64(r.IntN(width)), Y: float64(r.IntN(height))}
	case 1:
		return pathlength.Position{X: float64(r.IntN(2*width-1)) / 2, Y: float64(r.IntN(2*height-1)) / 2}
	default:
		return pathlength.Position{X: r.Float64() * float64(width-1), Y: r.Float64() * float64(height-1)}
	}
}
