// Package rbm implements a restricted Boltzmann machine with binary visible
// and hidden units, trained with one-step contrastive divergence (CD-1).
//
// Weights are kept in a single (Visible+1) × (Hidden+1) matrix. Row 0 holds
// the hidden biases and column 0 the visible biases; they are learned as the
// weights of a bias unit that is always on. Entry [0,0] is unused.
package rbm

import (
	"bytes"
	"fmt"
	"log"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Float is the dtype of every tensor the model reads or produces.
var Float = tensor.Float32

// RBM is a restricted Boltzmann machine. It is not safe for concurrent use.
type RBM struct {
	Statistics

	conf     Config
	weights  *tensor.Dense
	rng      *rand.Rand
	observer func(EpochStats) error
	epoch    int

	buf    bytes.Buffer
	logger *log.Logger
}

// New creates a machine whose random source is seeded with conf.Seed.
func New(conf Config) (*RBM, error) {
	return NewWithRand(conf, rand.New(rand.NewSource(conf.Seed)))
}

// NewWithRand creates a machine drawing all of its randomness, for weight
// initialization and for sampling, from rng.
func NewWithRand(conf Config, rng *rand.Rand) (*RBM, error) {
	if err := conf.validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	if rng == nil {
		return nil, errors.New("NewWithRand requires a random source")
	}
	retVal := &RBM{
		Statistics: makeStatistics(),
		conf:       conf,
		rng:        rng,
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	retVal.initWeights()
	return retVal, nil
}

// initWeights fills the non-bias block with values drawn uniformly from
// ±Gain·sqrt(6/(Hidden+Visible)). The bias row and column start at zero.
func (r *RBM) initWeights() {
	rows, cols := r.conf.Visible+1, r.conf.Hidden+1
	limit := float32(r.conf.Gain) * math32.Sqrt(6/float32(r.conf.Hidden+r.conf.Visible))
	backing := make([]float32, rows*cols)
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			backing[i*cols+j] = limit * (2*r.rng.Float32() - 1)
		}
	}
	r.weights = tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
}

// Visible returns the number of visible units, excluding the bias.
func (r *RBM) Visible() int { return r.conf.Visible }

// Hidden returns the number of hidden units, excluding the bias.
func (r *RBM) Hidden() int { return r.conf.Hidden }

// Config returns the configuration the machine was built with.
func (r *RBM) Config() Config { return r.conf }

// Weights returns a copy of the (Visible+1) × (Hidden+1) weight matrix.
func (r *RBM) Weights() *tensor.Dense { return r.weights.Clone().(*tensor.Dense) }

// SetObserver registers fn to be called with the statistics of every
// training epoch. A non-nil error from fn stops training.
func (r *RBM) SetObserver(fn func(EpochStats) error) { r.observer = fn }

// Log returns everything the machine has logged while training.
func (r *RBM) Log() string { return r.buf.String() }

// Finite reports whether every weight is a finite number.
func (r *RBM) Finite() bool { return isFinite(r.weights.Data().([]float32)) }

func (r *RBM) String() string {
	return fmt.Sprintf("RBM %d visible × %d hidden, trained for %d epochs", r.conf.Visible, r.conf.Hidden, r.epoch)
}
