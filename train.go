package rbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

// Train runs maxEpochs epochs of CD-1 over data, a matrix of binary
// examples with one column per visible unit. The weights are updated in
// place once per epoch using the whole dataset. data is not modified.
func (r *RBM) Train(data *tensor.Dense, maxEpochs int, learningRate float64) error {
	if err := checkInput("Train", data, r.conf.Visible); err != nil {
		return err
	}
	if maxEpochs < 0 {
		return errors.WithStack(&ConfigError{Field: "maxEpochs", Value: maxEpochs})
	}
	if learningRate < 0 {
		return errors.WithStack(&ConfigError{Field: "learningRate", Value: learningRate})
	}

	v0, err := withBias(data)
	if err != nil {
		return errors.WithMessage(err, "Train failed")
	}
	var m maebe
	v0T := m.transpose(v0)
	if m.err != nil {
		return m.err
	}

	r.logger.Printf("Training %d examples for %d epochs, learning rate %v", v0.Shape()[0], maxEpochs, learningRate)
	lr := float32(learningRate)
	for i := 0; i < maxEpochs; i++ {
		stats, err := r.cd1(v0, v0T, lr)
		if err != nil {
			return errors.WithMessagef(err, "epoch %d", r.epoch)
		}
		r.update(stats)
		r.logger.Printf("Epoch %d: error is %v", stats.Epoch, stats.Error)
		r.epoch++

		if r.observer != nil {
			if err = r.observer(stats); err != nil {
				return errors.Wrapf(err, "observer stopped training at epoch %d", stats.Epoch)
			}
		}
	}
	return nil
}

// cd1 performs one contrastive divergence step. v0 is the bias-augmented
// data and v0T its transpose.
func (r *RBM) cd1(v0, v0T *tensor.Dense, lr float32) (EpochStats, error) {
	var m maebe
	w := r.weights
	n := v0.Shape()[0]

	// positive phase
	posAct := m.matmul(v0, w)
	posProbs := m.logistic(posAct)
	m.fixBias(posProbs)
	posStates := m.sample(posProbs, r.rng)
	posAssoc := m.matmul(v0T, posProbs)

	// negative phase: reconstruct the visible units, then drive the hidden
	// units from the reconstruction.
	wT := m.transpose(w)
	negVisible := m.logistic(m.matmul(posStates, wT))
	m.fixBias(negVisible)
	negAct := m.matmul(negVisible, w)
	negProbs := m.logistic(negAct)
	m.fixBias(negProbs)
	negAssoc := m.matmul(m.transpose(negVisible), negProbs)
	if m.err != nil {
		return EpochStats{}, m.err
	}

	stats := EpochStats{
		Epoch: r.epoch,
		Error: sqDiff(v0.Data().([]float32), negVisible.Data().([]float32)),
	}
	var err error
	if stats.PositiveEnergy, err = meanEnergy(posAct, posStates); err != nil {
		return stats, err
	}
	if stats.NegativeEnergy, err = meanEnergy(negAct, negProbs); err != nil {
		return stats, err
	}

	// W += lr · (pos - neg) / n
	delta := posAssoc.Data().([]float32)
	vecf32.Sub(delta, negAssoc.Data().([]float32))
	vecf32.Scale(delta, lr/float32(n))
	vecf32.Add(w.Data().([]float32), delta)
	return stats, nil
}

// sqDiff returns Σ(a-b)². a is left untouched.
func sqDiff(a, b []float32) float32 {
	diff := make([]float32, len(a))
	copy(diff, a)
	vecf32.Sub(diff, b)
	vecf32.Mul(diff, diff)
	return vecf32.Sum(diff)
}
