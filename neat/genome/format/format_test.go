package format

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/randsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadGenomeRoundTrips(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	g := genome.New(2, reg, rng)
	g.MutateAddNode()

	var buf bytes.Buffer
	require.NoError(t, WriteGenome(&buf, g))

	reg2 := innovation.New()
	rng2 := randsrc.New(2)
	got, err := ReadGenome(&buf, 2, reg2, rng2, true)
	require.NoError(t, err)

	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, len(g.Nodes), len(got.Nodes))
	assert.Equal(t, len(g.Connections), len(got.Connections))
	for innov, c := range g.Connections {
		oc, ok := got.Connections[innov]
		require.True(t, ok)
		assert.Equal(t, c.From, oc.From)
		assert.Equal(t, c.To, oc.To)
		assert.Equal(t, c.Weight, oc.Weight)
		assert.Equal(t, c.Enabled, oc.Enabled)
	}
}

func TestReadGenomeSeedsRegistry(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	g := genome.New(2, reg, rng)

	var buf bytes.Buffer
	require.NoError(t, WriteGenome(&buf, g))

	reg2 := innovation.New()
	rng2 := randsrc.New(2)
	_, err := ReadGenome(&buf, 2, reg2, rng2, true)
	require.NoError(t, err)

	innov, ok := reg2.Lookup(1, g.OutputNodeID())
	require.True(t, ok)
	want, _ := reg.Lookup(1, g.OutputNodeID())
	assert.Equal(t, want, innov)
}

func TestReadGenomeRejectsMalformedID(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	_, err := ReadGenome(strings.NewReader("id,zz\n"), 2, reg, rng, false)
	assert.Error(t, err)
}

func TestReadGenomeRequiresIDLine(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	_, err := ReadGenome(strings.NewReader("node,1,Sen\n"), 2, reg, rng, false)
	assert.Error(t, err)
}

func TestWriteDOTIncludesClustersAndOnlyEnabledEdges(t *testing.T) {
	reg := innovation.New()
	rng := randsrc.New(1)
	g := genome.New(2, reg, rng)
	var disabled uint16
	for innov, c := range g.Connections {
		disabled = innov
		c.Enabled = false
		break
	}

	var buf bytes.Buffer
	labels := map[uint16]string{1: "speed", 2: "heading"}
	require.NoError(t, WriteDOT(&buf, g, labels))

	out := buf.String()
	assert.Contains(t, out, "cluster_0")
	assert.Contains(t, out, "cluster_1")
	assert.Contains(t, out, "speed")
	assert.Contains(t, out, "shape=doublecircle")

	disabledConn := g.Connections[disabled]
	edge := fmt.Sprintf("n%d -> n%d", disabledConn.From, disabledConn.To)
	assert.False(t, strings.Contains(out, edge))
}
