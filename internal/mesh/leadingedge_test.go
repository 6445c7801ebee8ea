package mesh

import (
	"testing"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseLeadingEdge_SymmetricSurfacesRecoverAnalyticLE(t *testing.T) {
	for _, x0 := range []float64{0, 0.0125, -0.003} {
		upper, lower := parabolicSurfaces(x0, 2, []float64{0.5, 0.4, 0.3, 0.2, 0.1, 0})

		contour, xLE, err := CloseLeadingEdge(upper, lower)
		require.NoError(t, err)
		assert.InDelta(t, x0, xLE, 1e-12)
		assert.Equal(t, orb.Point{xLE, 0}, contour.Points[contour.LeadingEdge])
	}
}

func TestCloseLeadingEdge_ContourOrder(t *testing.T) {
	upper, lower := parabolicSurfaces(0, 2, []float64{0.5, 0.4, 0.3, 0.2, 0.1, 0})

	contour, _, err := CloseLeadingEdge(upper, lower)
	require.NoError(t, err)

	// 5 upper + LE + 5 lower + closing point.
	require.Len(t, contour.Points, 12)
	assert.True(t, contour.Closure)
	assert.Equal(t, 5, contour.LeadingEdge)

	assert.Equal(t, upper[0], contour.Points[0])
	assert.Equal(t, upper[4], contour.Points[4])
	assert.Equal(t, lower[1], contour.Points[6])
	assert.Equal(t, lower[5], contour.Points[10])

	closing := contour.Points[11]
	assert.Equal(t, upper[0].X(), closing.X())
	assert.InDelta(t, 0.0, closing.Y(), 1e-15)
}

func TestCloseLeadingEdge_CircleAirfoil(t *testing.T) {
	rawUpper, rawLower := circleHalves(9)
	upper, err := Resample(rawUpper, 20)
	require.NoError(t, err)
	lower, err := Resample(rawLower, 20)
	require.NoError(t, err)

	contour, xLE, err := CloseLeadingEdge(upper, lower.Reversed())
	require.NoError(t, err)

	assert.Len(t, contour.Points, 40)
	assert.True(t, contour.Closure)
	assert.InDelta(t, 0.0, xLE, 0.02)
	assert.Less(t, LeadingEdgeKink(contour), 90.0)
}

func TestCloseLeadingEdge_SharpTrailingEdgeIsNotDuplicated(t *testing.T) {
	upper := domain.ResampledCurve{{1, 0}, {0.6, 0.08}, {0.3, 0.07}, {0.1, 0.04}, {0.02, 0.015}, {0, 0}}
	lower := domain.ResampledCurve{{0, 0}, {0.02, -0.015}, {0.1, -0.04}, {0.3, -0.07}, {0.6, -0.08}, {1, 0}}

	contour, _, err := CloseLeadingEdge(upper, lower)
	require.NoError(t, err)

	assert.False(t, contour.Closure)
	assert.True(t, contour.SharpTrailingEdge)
	// 5 upper + LE + 4 lower; the lower trailing edge is upper[0].
	assert.Len(t, contour.Points, 10)
	assert.Equal(t, orb.Point{0.6, -0.08}, contour.Points[len(contour.Points)-1])
}

func TestCloseLeadingEdge_TrailingEdgeToleranceFollowsChord(t *testing.T) {
	sharp := func(scale, gap float64) (domain.ResampledCurve, domain.ResampledCurve) {
		upper := domain.ResampledCurve{{1, 0}, {0.6, 0.08}, {0.3, 0.07}, {0.1, 0.04}, {0.02, 0.015}, {0, 0}}
		lower := domain.ResampledCurve{{0, 0}, {0.02, -0.015}, {0.1, -0.04}, {0.3, -0.07}, {0.6, -0.08}, {1, 0}}
		for i := range upper {
			upper[i] = orb.Point{upper[i].X() * scale, upper[i].Y() * scale}
			lower[i] = orb.Point{lower[i].X() * scale, lower[i].Y() * scale}
		}
		lower[len(lower)-1] = orb.Point{scale, -gap}
		return upper, lower
	}

	t.Run("large chord absorbs rounding at the trailing edge", func(t *testing.T) {
		upper, lower := sharp(1000, 1e-10)
		contour, _, err := CloseLeadingEdge(upper, lower)
		require.NoError(t, err)
		assert.True(t, contour.SharpTrailingEdge)
		assert.False(t, contour.Closure)
		assert.Len(t, contour.Points, 10)
	})

	t.Run("small chord keeps a tiny blunt trailing edge", func(t *testing.T) {
		upper, lower := sharp(1e-3, 5e-13)
		contour, _, err := CloseLeadingEdge(upper, lower)
		require.NoError(t, err)
		assert.False(t, contour.SharpTrailingEdge)
		assert.True(t, contour.Closure)
		assert.Len(t, contour.Points, 12)
	})
}

func TestCloseLeadingEdge_OpenBluntTrailingEdge(t *testing.T) {
	// Both trailing edges sit on y = 0, so the closing point would land on
	// upper[0] and the loop closes through the trailing-edge gap instead.
	upper := domain.ResampledCurve{{1, 0}, {0.6, 0.08}, {0.3, 0.07}, {0.1, 0.04}, {0.02, 0.015}, {0, 0}}
	lower := domain.ResampledCurve{{0, 0}, {0.02, -0.015}, {0.1, -0.04}, {0.3, -0.07}, {0.6, -0.08}, {0.98, 0}}

	contour, _, err := CloseLeadingEdge(upper, lower)
	require.NoError(t, err)

	assert.False(t, contour.SharpTrailingEdge)
	assert.False(t, contour.Closure)
	assert.Len(t, contour.Points, 11)
	assert.Equal(t, orb.Point{0.98, 0}, contour.Points[len(contour.Points)-1])
}

func TestCloseLeadingEdge_RejectsLeadingEdgeBehindNeighbours(t *testing.T) {
	// x = -2y² puts the solved point at x = 0, aft of every neighbour.
	upper, lower := parabolicSurfaces(0, -2, []float64{0.5, 0.4, 0.3, 0.2, 0.1, 0})

	_, _, err := CloseLeadingEdge(upper, lower)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindDegenerateGeometry))
	assert.Contains(t, err.Error(), "outside the neighbourhood")
}

func TestCloseLeadingEdge_TooFewNeighbours(t *testing.T) {
	upper := domain.ResampledCurve{{1, 0.1}, {0.5, 0.05}, {0, 0}}
	lower := domain.ResampledCurve{{0, 0}, {0.5, -0.05}, {1, -0.1}}

	_, _, err := CloseLeadingEdge(upper, lower)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindDegenerateGeometry))
	assert.ErrorIs(t, err, domain.ErrDegenerateGeometry)
}

func TestCloseLeadingEdge_RefusesToExtrapolate(t *testing.T) {
	// Both neighbourhoods sit above y = 0.
	upper := domain.ResampledCurve{{1, 0.3}, {0.5, 0.25}, {0.3, 0.2}, {0.2, 0.15}, {0.1, 0.1}, {0, 0.05}}
	lower := domain.ResampledCurve{{0, 0.05}, {0.1, 0.04}, {0.2, 0.03}, {0.3, 0.02}, {1, 0.01}}

	_, _, err := CloseLeadingEdge(upper, lower)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindDegenerateGeometry))
}

func TestCloseLeadingEdge_DuplicateNeighbourOrdinates(t *testing.T) {
	upper := domain.ResampledCurve{{1, 0.2}, {0.3, 0.1}, {0.2, 0.1}, {0.1, 0.05}, {0, 0}}
	lower := domain.ResampledCurve{{0, 0}, {0.1, -0.05}, {0.2, -0.1}, {0.3, -0.15}, {1, -0.2}}

	_, _, err := CloseLeadingEdge(upper, lower)
	assert.True(t, domain.IsKind(err, domain.KindDegenerateGeometry))
}

func TestLeadingEdgeKink(t *testing.T) {
	c := domain.ClosedContour{
		Points:      []orb.Point{{1, 1}, {0, 0}, {1, -1}},
		LeadingEdge: 1,
	}
	assert.InDelta(t, 90.0, LeadingEdgeKink(c), 1e-9)

	straight := domain.ClosedContour{
		Points:      []orb.Point{{0, 1}, {0, 0}, {0, -1}},
		LeadingEdge: 1,
	}
	assert.InDelta(t, 0.0, LeadingEdgeKink(straight), 1e-9)
}
