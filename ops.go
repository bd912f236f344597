package rbm

import (
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// maebe chains tensor operations. Once an operation fails every later call
// is a no-op and the first error is kept in err.
type maebe struct {
	err error
}

func (m *maebe) matmul(a, b *tensor.Dense) (retVal *tensor.Dense) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = a.MatMul(b); m.err != nil {
		m.err = errors.Wrapf(m.err, "MatMul %v × %v failed", a.Shape(), b.Shape())
	}
	return
}

func (m *maebe) transpose(a *tensor.Dense) *tensor.Dense {
	if m.err != nil {
		return nil
	}
	var t tensor.Tensor
	if t, m.err = tensor.T(a); m.err != nil {
		m.err = errors.WithStack(m.err)
		return nil
	}
	return t.(*tensor.Dense)
}

// logistic returns a new tensor holding σ applied to every element of a.
func (m *maebe) logistic(a *tensor.Dense) *tensor.Dense {
	if m.err != nil {
		return nil
	}
	var t tensor.Tensor
	if t, m.err = a.Apply(Logistic); m.err != nil {
		m.err = errors.WithStack(m.err)
		return nil
	}
	return t.(*tensor.Dense)
}

// fixBias sets column 0 of every row of a to 1.
func (m *maebe) fixBias(a *tensor.Dense) {
	if m.err != nil {
		return
	}
	var rows [][]float32
	if rows, m.err = native.MatrixF32(a); m.err != nil {
		m.err = errors.WithStack(m.err)
		return
	}
	for _, row := range rows {
		row[0] = 1
	}
}

// sample draws a binary tensor where each cell is 1 iff its probability
// exceeds an independent uniform draw from rng.
func (m *maebe) sample(probs *tensor.Dense, rng *rand.Rand) *tensor.Dense {
	if m.err != nil {
		return nil
	}
	return bernoulli(probs, rng)
}

func bernoulli(probs *tensor.Dense, rng *rand.Rand) *tensor.Dense {
	p := probs.Data().([]float32)
	states := make([]float32, len(p))
	for i, v := range p {
		if v > rng.Float32() {
			states[i] = 1
		}
	}
	return tensor.New(tensor.WithShape(probs.Shape().Clone()...), tensor.WithBacking(states))
}

// withBias returns a copy of data with a column of 1s prepended.
func withBias(data *tensor.Dense) (*tensor.Dense, error) {
	rows, err := native.MatrixF32(data)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %v as a float32 matrix", data.Shape())
	}
	n, cols := data.Shape()[0], data.Shape()[1]
	backing := make([]float32, n*(cols+1))
	for i, row := range rows {
		start := i * (cols + 1)
		backing[start] = 1
		copy(backing[start+1:start+1+cols], row)
	}
	return tensor.New(tensor.WithShape(n, cols+1), tensor.WithBacking(backing)), nil
}

// dropBias returns a copy of a without its first column.
func dropBias(a *tensor.Dense) (*tensor.Dense, error) {
	rows, err := native.MatrixF32(a)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	n, cols := a.Shape()[0], a.Shape()[1]-1
	backing := make([]float32, n*cols)
	for i, row := range rows {
		copy(backing[i*cols:(i+1)*cols], row[1:])
	}
	return tensor.New(tensor.WithShape(n, cols), tensor.WithBacking(backing)), nil
}

// checkInput verifies that data is a float32 matrix with the given number of columns.
func checkInput(op string, data *tensor.Dense, cols int) error {
	if data == nil {
		return errors.WithStack(&DimError{Op: op, What: "dims", Want: 2, Got: 0})
	}
	if d := data.Dims(); d != 2 {
		return errors.WithStack(&DimError{Op: op, What: "dims", Want: 2, Got: d})
	}
	if c := data.Shape()[1]; c != cols {
		return errors.WithStack(&DimError{Op: op, What: "columns", Want: cols, Got: c})
	}
	if data.Dtype() != Float {
		return errors.Errorf("%s: expected %v data, got %v", op, Float, data.Dtype())
	}
	return nil
}
