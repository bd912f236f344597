package rbm

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"gorgonia.org/tensor/native"
)

// ToDot renders the machine as an undirected bipartite graph in the DOT
// language. Unit 0 of each layer is its bias unit. Edges are labelled with
// their weights.
func (r *RBM) ToDot() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("RBM"); err != nil {
		return "", err
	}
	g.SetDir(false)

	var errs manyErr
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(g.AddSubGraph("RBM", "cluster_visible", map[string]string{"label": `"visible"`, "rank": "same"}))
	add(g.AddSubGraph("RBM", "cluster_hidden", map[string]string{"label": `"hidden"`, "rank": "same"}))
	for i := 0; i <= r.conf.Visible; i++ {
		add(g.AddNode("cluster_visible", visibleNode(i), unitAttrs(i)))
	}
	for j := 0; j <= r.conf.Hidden; j++ {
		add(g.AddNode("cluster_hidden", hiddenNode(j), unitAttrs(j)))
	}

	rows, err := native.MatrixF32(r.weights)
	if err != nil {
		return "", err
	}
	for i, row := range rows {
		for j, w := range row {
			if i == 0 && j == 0 {
				continue
			}
			attrs := map[string]string{"label": fmt.Sprintf(`"%.3f"`, w)}
			add(g.AddEdge(visibleNode(i), hiddenNode(j), false, attrs))
		}
	}
	if len(errs) > 0 {
		return "", errs
	}
	return g.String(), nil
}

func visibleNode(i int) string { return fmt.Sprintf("v%d", i) }
func hiddenNode(j int) string  { return fmt.Sprintf("h%d", j) }

func unitAttrs(i int) map[string]string {
	if i == 0 {
		return map[string]string{"shape": "box", "label": `"bias"`}
	}
	return map[string]string{"shape": "circle"}
}
