package rbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// RunVisible samples the hidden units for every row of data, a matrix with
// one column per visible unit. It returns a binary matrix with one column
// per hidden unit.
func (r *RBM) RunVisible(data *tensor.Dense) (*tensor.Dense, error) {
	if err := checkInput("RunVisible", data, r.conf.Visible); err != nil {
		return nil, err
	}
	v, err := withBias(data)
	if err != nil {
		return nil, err
	}
	var m maebe
	states := m.sample(m.logistic(m.matmul(v, r.weights)), r.rng)
	if m.err != nil {
		return nil, m.err
	}
	return dropBias(states)
}

// RunHidden samples the visible units for every row of data, a matrix with
// one column per hidden unit. It returns a binary matrix with one column
// per visible unit.
func (r *RBM) RunHidden(data *tensor.Dense) (*tensor.Dense, error) {
	if err := checkInput("RunHidden", data, r.conf.Hidden); err != nil {
		return nil, err
	}
	h, err := withBias(data)
	if err != nil {
		return nil, err
	}
	var m maebe
	states := m.sample(m.logistic(m.matmul(h, m.transpose(r.weights))), r.rng)
	if m.err != nil {
		return nil, m.err
	}
	return dropBias(states)
}

// Daydream runs a single Gibbs chain for numSamples steps and returns every
// visible state it visited, one per row. The first row is the random
// starting point drawn uniformly from [0,1) and is not binary. Each later row
// is sampled from the row before it, so consecutive rows are correlated.
func (r *RBM) Daydream(numSamples int) (*tensor.Dense, error) {
	if numSamples < 1 {
		return nil, errors.WithStack(&ConfigError{Field: "numSamples", Value: numSamples})
	}
	cols := r.conf.Visible + 1
	samples := tensor.New(tensor.Of(Float), tensor.WithShape(numSamples, cols))
	rows, err := native.MatrixF32(samples)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rows[0][0] = 1
	for j := 1; j < cols; j++ {
		rows[0][j] = r.rng.Float32()
	}

	var m maebe
	wT := m.transpose(r.weights)
	for i := 1; i < numSamples && m.err == nil; i++ {
		prev := make([]float32, cols)
		copy(prev, rows[i-1])
		visible := tensor.New(tensor.WithShape(1, cols), tensor.WithBacking(prev))

		hidden := m.sample(m.logistic(m.matmul(visible, r.weights)), r.rng)
		m.fixBias(hidden)
		states := m.sample(m.logistic(m.matmul(hidden, wT)), r.rng)
		if m.err != nil {
			break
		}
		copy(rows[i], states.Data().([]float32))
		rows[i][0] = 1
	}
	if m.err != nil {
		return nil, errors.WithMessage(m.err, "Daydream failed")
	}
	return dropBias(samples)
}
