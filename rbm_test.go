package rbm

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

// movies is the six-film ratings set from the walkthrough: the first three
// columns are fantasy films, the last three Oscar winners.
var movies = [][]float32{
	{1, 1, 1, 0, 0, 0},
	{1, 0, 1, 0, 0, 0},
	{1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 0},
	{0, 0, 1, 1, 0, 0},
	{0, 0, 1, 1, 1, 0},
}

func newTestRBM(t *testing.T, visible, hidden int) *RBM {
	conf := DefaultConf(visible, hidden)
	conf.Seed = 1337
	r, err := New(conf)
	require.NoError(t, err)
	return r
}

func mustMatrix(t *testing.T, rows [][]float32) *tensor.Dense {
	m, err := Matrix(rows)
	require.NoError(t, err)
	return m
}

func assertBinary(t *testing.T, a *tensor.Dense) {
	for i, v := range a.Data().([]float32) {
		if v != 0 && v != 1 {
			t.Errorf("element %d is %v, expected 0 or 1", i, v)
		}
	}
}

func TestNew(t *testing.T) {
	sizes := []struct{ visible, hidden int }{
		{1, 1},
		{6, 3},
		{3, 6},
		{784, 100},
	}
	for _, s := range sizes {
		r := newTestRBM(t, s.visible, s.hidden)
		w := r.Weights()
		if diff := cmp.Diff([]int{s.visible + 1, s.hidden + 1}, []int(w.Shape())); diff != "" {
			t.Errorf("weights shape mismatch (-want +got):\n%s", diff)
		}

		rows := s.visible + 1
		cols := s.hidden + 1
		limit := float32(0.1) * math32.Sqrt(6/float32(s.visible+s.hidden))
		data := w.Data().([]float32)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				v := data[i*cols+j]
				if i == 0 || j == 0 {
					assert.Equal(t, float32(0), v, "bias weight [%d,%d] should start at 0", i, j)
					continue
				}
				assert.True(t, v >= -limit && v <= limit, "weight [%d,%d] = %v outside ±%v", i, j, v, limit)
			}
		}
	}
}

func TestNewInvalid(t *testing.T) {
	for _, conf := range []Config{
		{Visible: 0, Hidden: 3},
		{Visible: 6, Hidden: 0},
		{Visible: -2, Hidden: -2},
	} {
		_, err := New(conf)
		var ce *ConfigError
		assert.True(t, errors.As(err, &ce), "New(%+v) should fail with a *ConfigError, got %v", conf, err)
	}

	_, err := NewWithRand(DefaultConf(6, 3), nil)
	assert.Error(t, err)
}

func TestNewSeeded(t *testing.T) {
	a := newTestRBM(t, 6, 3)
	b := newTestRBM(t, 6, 3)
	assert.Equal(t, a.Weights().Data(), b.Weights().Data(), "same seed should give the same weights")

	c, err := NewWithRand(DefaultConf(6, 3), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.NotEqual(t, a.Weights().Data(), c.Weights().Data())
}

func TestWeightsIsACopy(t *testing.T) {
	r := newTestRBM(t, 6, 3)
	w := r.Weights()
	w.Data().([]float32)[5] = 100
	assert.NotEqual(t, float32(100), r.Weights().Data().([]float32)[5])
}

func TestMatrix(t *testing.T) {
	m := mustMatrix(t, movies)
	assert.Equal(t, tensor.Shape{6, 6}, m.Shape())

	_, err := Matrix([][]float32{{1, 0}, {1}})
	var de *DimError
	assert.True(t, errors.As(err, &de))

	_, err = Matrix(nil)
	assert.Error(t, err)
}
