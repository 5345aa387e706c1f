package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformMulAppliesInnerFirst(t *testing.T) {
	outer := TranslateScale(10, 20, 2)
	inner := TranslateScale(1, 1, 3)
	p := Pt(5, -2)

	composed := outer.Mul(inner).Apply(p)
	stepwise := outer.Apply(inner.Apply(p))

	assert.InDelta(t, stepwise.X, composed.X, 1e-12)
	assert.InDelta(t, stepwise.Y, composed.Y, 1e-12)
}

func TestTransformIdentity(t *testing.T) {
	tf := TranslateScale(3, 4, 0.5)
	assert.Equal(t, tf, Identity().Mul(tf))
	assert.Equal(t, tf, tf.Mul(Identity()))
	assert.True(t, Identity().IsIdentity())
	assert.Equal(t, "", Identity().String())
	assert.Equal(t, "translate(3 4)", Translate(3, 4).String())
}

func TestTransformInverse(t *testing.T) {
	tf := TranslateScale(-7, 2, 4)
	inv, ok := tf.Inverse()
	assert.True(t, ok)
	assert.True(t, tf.Mul(inv).Near(Identity(), 1e-12))

	_, ok = Scale(0).Inverse()
	assert.False(t, ok)
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAngle(tt.in), 1e-12, "NormalizeAngle(%v)", tt.in)
	}
}

func TestUnitOfZeroVector(t *testing.T) {
	_, ok := Pt(0, 0).Unit()
	assert.False(t, ok)

	u, ok := Pt(3, 4).Unit()
	assert.True(t, ok)
	assert.InDelta(t, 1, u.Len(), 1e-12)
}

func TestRectTransformAndUnion(t *testing.T) {
	r := Rect{Min: Pt(1, 1), W: 2, H: 3}
	got := r.Transform(TranslateScale(10, 0, 2))
	assert.Equal(t, Rect{Min: Pt(12, 2), W: 4, H: 6}, got)

	u := r.Union(Rect{Min: Pt(-1, 0), W: 1, H: 1})
	assert.Equal(t, Rect{Min: Pt(-1, 0), W: 4, H: 4}, u)
	assert.Equal(t, r, Rect{}.Union(r))
}

func TestArcToCubicsEndsOnCircle(t *testing.T) {
	c := Pt(10, 10)
	segs := ArcToCubics(c, 5, 0, 3*math.Pi/2)
	assert.Len(t, segs, 3)

	end := segs[len(segs)-1][2]
	assert.InDelta(t, 5, end.Dist(c), 1e-9)
	assert.True(t, end.Near(Polar(c, 5, 3*math.Pi/2), 1e-9))

	assert.Nil(t, ArcToCubics(c, 5, 0, 0))
}
