package rbm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func trainedRBM(t *testing.T) *RBM {
	r := newTestRBM(t, 6, 3)
	require.NoError(t, r.Train(mustMatrix(t, movies), 500, 0.1))
	return r
}

func TestRunVisible(t *testing.T) {
	r := trainedRBM(t)
	data := mustMatrix(t, movies)
	hidden, err := r.RunVisible(data)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{6, 3}, hidden.Shape())
	assertBinary(t, hidden)
}

func TestRunHidden(t *testing.T) {
	r := trainedRBM(t)
	data := mustMatrix(t, [][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}})
	visible, err := r.RunHidden(data)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 6}, visible.Shape())
	assertBinary(t, visible)
}

func TestRoundTrip(t *testing.T) {
	r := trainedRBM(t)
	x := mustMatrix(t, movies)
	h, err := r.RunVisible(x)
	require.NoError(t, err)
	x2, err := r.RunHidden(h)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), x2.Shape())

	y := mustMatrix(t, [][]float32{{1, 0, 1}, {0, 1, 0}})
	v, err := r.RunHidden(y)
	require.NoError(t, err)
	y2, err := r.RunVisible(v)
	require.NoError(t, err)
	assert.Equal(t, y.Shape(), y2.Shape())
}

func TestInferenceDimErrors(t *testing.T) {
	r := newTestRBM(t, 6, 3)
	var de *DimError

	_, err := r.RunVisible(mustMatrix(t, [][]float32{{1, 0, 1}}))
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "RunVisible", de.Op)
	assert.Equal(t, 6, de.Want)
	assert.Equal(t, 3, de.Got)

	_, err = r.RunHidden(mustMatrix(t, movies))
	require.True(t, errors.As(err, &de), "got %v", err)
	assert.Equal(t, "RunHidden", de.Op)
	assert.Equal(t, 3, de.Want)
	assert.Equal(t, 6, de.Got)

	_, err = r.RunVisible(tensor.New(tensor.WithShape(3, 6), tensor.WithBacking(make([]float64, 18))))
	assert.Error(t, err, "float64 data should be rejected")
}

func TestDaydream(t *testing.T) {
	r := trainedRBM(t)
	samples, err := r.Daydream(10)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{10, 6}, samples.Shape())

	data := samples.Data().([]float32)
	for j, v := range data[:6] {
		assert.True(t, v >= 0 && v < 1, "starting sample [0,%d] = %v outside [0,1)", j, v)
	}
	assertBinary(t, tensor.New(tensor.WithShape(9, 6), tensor.WithBacking(data[6:])))
}

func TestDaydreamSingle(t *testing.T) {
	r := newTestRBM(t, 4, 2)
	samples, err := r.Daydream(1)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 4}, samples.Shape())
}

func TestDaydreamInvalid(t *testing.T) {
	r := newTestRBM(t, 6, 3)
	for _, n := range []int{0, -1} {
		_, err := r.Daydream(n)
		var ce *ConfigError
		assert.True(t, errors.As(err, &ce), "Daydream(%d) should fail with *ConfigError, got %v", n, err)
	}
}
