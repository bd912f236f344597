package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/gorgonia/rbm"
	"github.com/gorgonia/rbm/encoding/gif"
	"github.com/gorgonia/rbm/encoding/plot"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

var movies = []string{"Harry Potter", "Avatar", "LOTR 3", "Gladiator", "Titanic", "Glitter"}

var ratings = [][]float32{
	{1, 1, 1, 0, 0, 0}, // Alice: big SF/fantasy fan
	{1, 0, 1, 0, 0, 0}, // Bob: SF/fantasy fan, but doesn't like Avatar
	{1, 1, 1, 0, 0, 0}, // Carol: big SF/fantasy fan
	{0, 0, 1, 1, 1, 0}, // David: big Oscar winners fan
	{0, 0, 1, 1, 0, 0}, // Eric: Oscar winners fan, except for Titanic
	{0, 0, 1, 1, 1, 0}, // Fred: big Oscar winners fan
}

func main() {
	if err := run(os.Stdout, "."); err != nil {
		log.Fatalf("%+v", err)
	}
}

// run trains on the ratings, prints what the machine learned to w and
// writes the diagnostics into dir.
func run(w io.Writer, dir string) error {
	conf := rbm.DefaultConf(len(movies), 3)
	conf.Seed = 1337

	m, err := rbm.New(conf)
	if err != nil {
		return err
	}
	data, err := rbm.Matrix(ratings)
	if err != nil {
		return err
	}

	log.Printf("Training %v", m)
	if err = m.Train(data, conf.Epochs, conf.LearningRate); err != nil {
		return err
	}
	last := m.Epochs[len(m.Epochs)-1]
	log.Printf("Done. %v. Final error %v", m, last.Error)
	fmt.Fprintf(w, "Weights:\n%v\n", m.Weights())

	// George has watched LOTR 3 and Gladiator
	george, err := rbm.Matrix([][]float32{{0, 0, 0, 1, 1, 0}})
	if err != nil {
		return err
	}
	hidden, err := m.RunVisible(george)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Hidden units for George: %v\n", hidden.Data())

	// Which movies does each hidden unit turn on?
	for j := 0; j < m.Hidden(); j++ {
		h := make([]float32, m.Hidden())
		h[j] = 1
		ht, err := rbm.Matrix([][]float32{h})
		if err != nil {
			return err
		}
		v, err := m.RunHidden(ht)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Hidden unit %d alone: %v\n", j, liked(v))
	}

	free, err := m.FreeEnergy(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Free energy of the training data: %v\n", free)

	dreams, err := m.Daydream(20)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Daydream:\n%v\n", dreams)

	return write(m, dreams, dir)
}

func liked(v *tensor.Dense) []string {
	var retVal []string
	for i, x := range v.Data().([]float32) {
		if x == 1 {
			retVal = append(retVal, movies[i])
		}
	}
	return retVal
}

// write saves into dir the epoch statistics, the training curves, the daydream and the network.
func write(m *rbm.RBM, dreams *tensor.Dense, dir string) error {
	if err := m.Dump(filepath.Join(dir, "stats.csv")); err != nil {
		return errors.WithStack(err)
	}

	curves, err := os.Create(filepath.Join(dir, "curves.png"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer curves.Close()
	p := plot.New(600, 800)
	p.Writer = curves
	if err = p.Encode(m.Statistics); err != nil {
		return err
	}
	if err = p.Flush(); err != nil {
		return errors.WithStack(err)
	}

	dream, err := os.Create(filepath.Join(dir, "daydream.gif"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer dream.Close()
	g := gif.NewGifEncoder(200, 400)
	g.Writer = dream
	if err = g.EncodeAll(dreams); err != nil {
		return err
	}
	if err = g.Flush(); err != nil {
		return errors.WithStack(err)
	}

	dot, err := m.ToDot()
	if err != nil {
		return err
	}
	return errors.WithStack(ioutil.WriteFile(filepath.Join(dir, "rbm.dot"), []byte(dot), 0644))
}
