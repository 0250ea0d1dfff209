package config

import (
	"strings"
	"testing"

	"github.com/abreis/neatrsu/neat/neaterr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	yamlDoc := `
seed: 42
generations: 100
population_size: 150
c1: 1.0
c2: 1.0
c3: 0.4
compat_threshold: 3.0
survival_threshold: 0.2
p_perturb_or_new: 0.9
p_inherit_disabled: 0.75
p_mutate_weights: 0.8
p_mutate_addnode: 0.03
p_mutate_addconn: 0.05
p_mutate_only: 0.25
p_mate_only: 0.2
kill_stagnated: 15
refocus_stagnated: 10
best_compat: true
threads: 4
`
	o, err := LoadYAML(strings.NewReader(yamlDoc))
	require.NoError(t, err)
	assert.Equal(t, int64(42), o.Seed)
	assert.Equal(t, 150, o.PopulationSize)
	assert.True(t, o.BestCompat)
	assert.NoError(t, o.Validate())
}

func TestLoadLegacy(t *testing.T) {
	doc := `
# comment line
seed 7
threads 8
kill_stagnated 15
refocus_stagnated 10
perturb_stdev AUTO
`
	o, err := LoadLegacy(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, int64(7), o.Seed)
	assert.Equal(t, 8, o.Threads)
	assert.Nil(t, o.PerturbStdev)
}

func TestValidateRefocusMustBeLessThanKill(t *testing.T) {
	o := &Options{KillStagnated: 5, RefocusStagnated: 5, Threads: 1}
	err := o.Validate()
	require.Error(t, err)
	assert.True(t, neaterr.Is(err, neaterr.KindInvalidConfig))
}

func TestValidateThreadsRange(t *testing.T) {
	o := &Options{KillStagnated: 10, RefocusStagnated: 5, Threads: 33}
	err := o.Validate()
	require.Error(t, err)
	assert.True(t, neaterr.Is(err, neaterr.KindInvalidConfig))
}

func TestValidateSeedGenomeRequiresFile(t *testing.T) {
	o := &Options{KillStagnated: 10, RefocusStagnated: 5, Threads: 1, SeedGenome: true}
	err := o.Validate()
	require.Error(t, err)
	assert.True(t, neaterr.Is(err, neaterr.KindInvalidConfig))
}
