package rbm

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
	"gorgonia.org/vecf32"
)

// Energy returns E(v, h) = -vᵀWh for every row pair of v and h. Both are
// given without bias columns; the bias units are added internally so the
// result includes the visible and hidden bias terms.
func (r *RBM) Energy(v, h *tensor.Dense) ([]float32, error) {
	if err := checkInput("Energy", v, r.conf.Visible); err != nil {
		return nil, err
	}
	if err := checkInput("Energy", h, r.conf.Hidden); err != nil {
		return nil, err
	}
	if v.Shape()[0] != h.Shape()[0] {
		return nil, errors.WithStack(&DimError{Op: "Energy", What: "rows", Want: v.Shape()[0], Got: h.Shape()[0]})
	}
	vb, err := withBias(v)
	if err != nil {
		return nil, err
	}
	hb, err := withBias(h)
	if err != nil {
		return nil, err
	}
	var m maebe
	act := m.matmul(vb, r.weights)
	if m.err != nil {
		return nil, m.err
	}
	return rowEnergies(act, hb)
}

// rowEnergies returns -Σⱼ act[i,j]·h[i,j] for every row i, where act = vW.
func rowEnergies(act, h *tensor.Dense) ([]float32, error) {
	actRows, err := native.MatrixF32(act)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	hRows, err := native.MatrixF32(h)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	retVal := make([]float32, len(actRows))
	tmp := make([]float32, act.Shape()[1])
	for i, row := range actRows {
		copy(tmp, row)
		vecf32.Mul(tmp, hRows[i])
		retVal[i] = -vecf32.Sum(tmp)
	}
	return retVal, nil
}

func meanEnergy(act, h *tensor.Dense) (float32, error) {
	e, err := rowEnergies(act, h)
	if err != nil {
		return 0, err
	}
	return vecf32.Sum(e) / float32(len(e)), nil
}

// FreeEnergy returns F(v) = -Σᵢ vᵢaᵢ - Σⱼ log(1 + exp(bⱼ + Σᵢ vᵢwᵢⱼ)) for
// every row of v, where a are the visible biases and b the hidden biases.
func (r *RBM) FreeEnergy(v *tensor.Dense) ([]float32, error) {
	if err := checkInput("FreeEnergy", v, r.conf.Visible); err != nil {
		return nil, err
	}
	vb, err := withBias(v)
	if err != nil {
		return nil, err
	}
	visBias, hidWeights, err := r.splitWeights()
	if err != nil {
		return nil, err
	}

	n := vb.Shape()[0]
	g := G.NewGraph()
	vn := G.NewMatrix(g, G.Float32, G.WithShape(n, r.conf.Visible+1), G.WithName("v"), G.WithValue(vb))
	an := G.NewVector(g, G.Float32, G.WithShape(r.conf.Visible+1), G.WithName("a"), G.WithValue(visBias))
	wn := G.NewMatrix(g, G.Float32, G.WithShape(r.conf.Visible+1, r.conf.Hidden), G.WithName("w"), G.WithValue(hidWeights))

	var gm graphMaebe
	visTerm := gm.do(func() (*G.Node, error) { return G.Mul(vn, an) })
	hidAct := gm.do(func() (*G.Node, error) { return G.Mul(vn, wn) })
	softplus := gm.do(func() (*G.Node, error) { return G.Exp(hidAct) })
	softplus = gm.do(func() (*G.Node, error) { return G.Log1p(softplus) })
	hidTerm := gm.do(func() (*G.Node, error) { return G.Sum(softplus, 1) })
	free := gm.do(func() (*G.Node, error) { return G.Add(visTerm, hidTerm) })
	free = gm.do(func() (*G.Node, error) { return G.Neg(free) })
	if gm.err != nil {
		return nil, errors.WithMessage(gm.err, "unable to build free energy graph")
	}

	var out G.Value
	G.Read(free, &out)
	machine := G.NewTapeMachine(g)
	defer machine.Close()
	if err = machine.RunAll(); err != nil {
		return nil, errors.Wrap(err, "unable to run free energy graph")
	}
	switch data := out.Data().(type) {
	case []float32:
		retVal := make([]float32, len(data))
		copy(retVal, data)
		return retVal, nil
	case float32:
		// a single row may be reduced to a scalar
		return []float32{data}, nil
	default:
		return nil, errors.Errorf("unexpected free energy of type %T", data)
	}
}

// splitWeights separates the visible bias column from the weights feeding
// the hidden units (including the hidden bias row).
func (r *RBM) splitWeights() (visBias, hidWeights *tensor.Dense, err error) {
	rows, err := native.MatrixF32(r.weights)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	h := r.conf.Hidden
	a := make([]float32, len(rows))
	w := make([]float32, len(rows)*h)
	for i, row := range rows {
		a[i] = row[0]
		copy(w[i*h:(i+1)*h], row[1:])
	}
	visBias = tensor.New(tensor.WithShape(len(rows)), tensor.WithBacking(a))
	hidWeights = tensor.New(tensor.WithShape(len(rows), h), tensor.WithBacking(w))
	return visBias, hidWeights, nil
}

type graphMaebe struct {
	err error
}

func (m *graphMaebe) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = f(); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}
