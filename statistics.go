package rbm

import (
	"encoding/csv"
	"os"
	"strconv"
)

// EpochStats are the diagnostics of one CD-1 epoch. None of them feed the
// weight update.
type EpochStats struct {
	Epoch int

	// Error is Σ(v - v')² between the data and its reconstruction probabilities.
	Error float32

	// PositiveEnergy is the mean E(v, h) over the data and its sampled hidden states.
	PositiveEnergy float32

	// NegativeEnergy is the mean E(v', h') over the reconstruction and its hidden probabilities.
	// Both energies use the weights from before the epoch's update.
	NegativeEnergy float32
}

type Statistics struct {
	Epochs []EpochStats
}

func makeStatistics() Statistics {
	return Statistics{
		Epochs: make([]EpochStats, 0, 64),
	}
}

func (s *Statistics) update(e EpochStats) { s.Epochs = append(s.Epochs, e) }

// Reset forgets all recorded epochs.
func (s *Statistics) Reset() { s.Epochs = s.Epochs[:0] }

func (s *Statistics) Errors() []float32 {
	return s.collect(func(e EpochStats) float32 { return e.Error })
}

func (s *Statistics) PositiveEnergies() []float32 {
	return s.collect(func(e EpochStats) float32 { return e.PositiveEnergy })
}

func (s *Statistics) NegativeEnergies() []float32 {
	return s.collect(func(e EpochStats) float32 { return e.NegativeEnergy })
}

func (s *Statistics) collect(f func(EpochStats) float32) []float32 {
	retVal := make([]float32, len(s.Epochs))
	for i, e := range s.Epochs {
		retVal[i] = f(e)
	}
	return retVal
}

// Dump writes the recorded epochs as CSV into filename.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"epoch", "error", "positive_energy", "negative_energy"}); err != nil {
		return err
	}
	records := make([][]string, 0, len(s.Epochs))
	for _, e := range s.Epochs {
		records = append(records, []string{
			strconv.Itoa(e.Epoch),
			strconv.FormatFloat(float64(e.Error), 'f', 6, 32),
			strconv.FormatFloat(float64(e.PositiveEnergy), 'f', 6, 32),
			strconv.FormatFloat(float64(e.NegativeEnergy), 'f', 6, 32),
		})
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
