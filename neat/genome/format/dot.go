package format

import (
	"fmt"
	"io"
	"text/template"

	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/neaterr"
)

type dotNode struct {
	ID    uint16
	Label string
}

type dotEdge struct {
	From, To uint16
	Weight   float64
}

type dotData struct {
	Inputs []dotNode
	Output dotNode
	Bias   dotNode
	Hidden []dotNode
	Edges  []dotEdge
}

var dotTemplate = template.Must(template.New("genome").Parse(`digraph Genome {
	rankdir=LR;
	subgraph cluster_0 {
		label="inputs";
		color=lightgrey;
{{- range .Inputs}}
		n{{.ID}} [label="{{.Label}}"];
{{- end}}
	}
	subgraph cluster_1 {
		label="output";
		color=lightgrey;
		n{{.Output.ID}} [label="{{.Output.Label}}"];
	}
	n{{.Bias.ID}} [label="{{.Bias.Label}}", shape=doublecircle, style=filled, fillcolor=lightgrey];
{{- range .Hidden}}
	n{{.ID}} [label="{{.Label}}"];
{{- end}}
{{- range .Edges}}
	n{{.From}} -> n{{.To}} [label="{{printf "%.3f" .Weight}}"];
{{- end}}
}
`))

// WriteDOT writes g as a clustered Graphviz digraph: one cluster for
// sensor nodes, one for the output node, a styled bias node, and labeled
// edges for enabled connections only. labels maps node id to a
// caller-chosen display name; nodes absent from labels fall back to
// "n<id>". Grounded on original_source/src/genetic.cpp's
// Genome::PrintToGV, hand-written with text/template rather than
// gonum.org/v1/gonum/graph/encoding/dot's generic Marshal: that API walks
// a graph.Graph and emits one flat node/edge list, with no hook for the
// per-kind clustering and bias styling this format requires.
func WriteDOT(w io.Writer, g *genome.Genome, labels map[uint16]string) error {
	label := func(id uint16) string {
		if l, ok := labels[id]; ok {
			return l
		}
		return fmt.Sprintf("n%d", id)
	}

	data := dotData{
		Output: dotNode{ID: g.OutputNodeID(), Label: label(g.OutputNodeID())},
		Bias:   dotNode{ID: g.BiasNodeID(), Label: label(g.BiasNodeID())},
	}
	for id, n := range g.Nodes {
		switch n.Kind {
		case genome.Sensor:
			data.Inputs = append(data.Inputs, dotNode{ID: id, Label: label(id)})
		case genome.Hidden:
			data.Hidden = append(data.Hidden, dotNode{ID: id, Label: label(id)})
		}
	}
	for i := 1; i < len(data.Inputs); i++ {
		for j := i; j > 0 && data.Inputs[j-1].ID > data.Inputs[j].ID; j-- {
			data.Inputs[j-1], data.Inputs[j] = data.Inputs[j], data.Inputs[j-1]
		}
	}
	for i := 1; i < len(data.Hidden); i++ {
		for j := i; j > 0 && data.Hidden[j-1].ID > data.Hidden[j].ID; j-- {
			data.Hidden[j-1], data.Hidden[j] = data.Hidden[j], data.Hidden[j-1]
		}
	}
	for _, c := range g.OrderedConnections() {
		if !c.Enabled {
			continue
		}
		data.Edges = append(data.Edges, dotEdge{From: c.From, To: c.To, Weight: c.Weight})
	}

	if err := dotTemplate.Execute(w, data); err != nil {
		return neaterr.IO(err, "writing genome dot export")
	}
	return nil
}
