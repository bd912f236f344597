package rbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Matrix packs rows into a dense float32 matrix. Every row must have the
// same length.
func Matrix(rows [][]float32) (*tensor.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("Matrix requires at least one non-empty row")
	}
	cols := len(rows[0])
	backing := make([]float32, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, errors.WithStack(&DimError{Op: "Matrix", What: "columns", Want: cols, Got: len(row)})
		}
		backing = append(backing, row...)
	}
	return tensor.New(tensor.WithShape(len(rows), cols), tensor.WithBacking(backing)), nil
}
