package rbm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor/native"
)

func TestEnergy(t *testing.T) {
	r := trainedRBM(t)
	w, err := native.MatrixF32(r.weights)
	require.NoError(t, err)

	v := [][]float32{{1, 1, 1, 0, 0, 0}, {0, 0, 1, 1, 0, 0}}
	h := [][]float32{{1, 0, 1}, {0, 1, 1}}
	e, err := r.Energy(mustMatrix(t, v), mustMatrix(t, h))
	require.NoError(t, err)
	require.Len(t, e, 2)

	for k := range v {
		// E = -Σ aᵢvᵢ - Σ bⱼhⱼ - Σ vᵢwᵢⱼhⱼ
		var want float64
		for i, vi := range v[k] {
			want -= float64(w[i+1][0] * vi)
		}
		for j, hj := range h[k] {
			want -= float64(w[0][j+1] * hj)
		}
		for i, vi := range v[k] {
			for j, hj := range h[k] {
				want -= float64(vi * w[i+1][j+1] * hj)
			}
		}
		assert.InDelta(t, want, e[k], 1e-4, "energy of row %d", k)
	}
}

func TestEnergyMismatchedRows(t *testing.T) {
	r := newTestRBM(t, 6, 3)
	_, err := r.Energy(mustMatrix(t, movies), mustMatrix(t, [][]float32{{1, 0, 1}}))
	assert.Error(t, err)
}

func TestFreeEnergy(t *testing.T) {
	r := trainedRBM(t)
	w, err := native.MatrixF32(r.weights)
	require.NoError(t, err)

	f, err := r.FreeEnergy(mustMatrix(t, movies))
	require.NoError(t, err)
	require.Len(t, f, len(movies))

	for k, v := range movies {
		var want float64
		for i, vi := range v {
			want -= float64(w[i+1][0] * vi)
		}
		for j := 1; j <= r.Hidden(); j++ {
			x := float64(w[0][j])
			for i, vi := range v {
				x += float64(vi * w[i+1][j])
			}
			want -= math.Log1p(math.Exp(x))
		}
		assert.InDelta(t, want, f[k], 1e-3, "free energy of row %d", k)
	}
}

func TestFreeEnergyPrefersTrainingData(t *testing.T) {
	r := newTestRBM(t, 6, 3)
	require.NoError(t, r.Train(mustMatrix(t, movies), 2000, 0.1))

	seen, err := r.FreeEnergy(mustMatrix(t, [][]float32{{1, 1, 1, 0, 0, 0}}))
	require.NoError(t, err)
	unseen, err := r.FreeEnergy(mustMatrix(t, [][]float32{{0, 1, 0, 0, 1, 1}}))
	require.NoError(t, err)
	assert.True(t, seen[0] < unseen[0], "training example should have lower free energy: %v vs %v", seen[0], unseen[0])
}
