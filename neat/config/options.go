// Package config loads and validates the tunables the generation driver
// and genetic operators consult: a YAML-native format for new configs,
// plus a legacy whitespace-separated "key value" reader for parity with
// older run configs.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abreis/neatrsu/neat/neaterr"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Options carries every tunable the population, species, and generation
// driver consult at run time.
type Options struct {
	Seed           int64   `yaml:"seed"`
	Generations    int     `yaml:"generations"`
	PopulationSize int     `yaml:"population_size"`
	C1             float64 `yaml:"c1"`
	C2             float64 `yaml:"c2"`
	C3             float64 `yaml:"c3"`
	CompatThreshold float64 `yaml:"compat_threshold"`
	SurvivalThreshold float64 `yaml:"survival_threshold"`

	PPerturbOrNew    float64 `yaml:"p_perturb_or_new"`
	PInheritDisabled float64 `yaml:"p_inherit_disabled"`
	PMutateWeights   float64 `yaml:"p_mutate_weights"`
	PMutateAddNode   float64 `yaml:"p_mutate_addnode"`
	PMutateAddConn   float64 `yaml:"p_mutate_addconn"`
	PMutateOnly      float64 `yaml:"p_mutate_only"`
	PMateOnly        float64 `yaml:"p_mate_only"`

	// PerturbStdev is the Gaussian sigma used by weight mutation. A nil
	// value means AUTO, under which the driver uses a constant sigma of
	// 1.0; there is no adaptive schedule. A non-nil value pins sigma to
	// that constant for the whole run.
	PerturbStdev *float64 `yaml:"perturb_stdev"`

	KillStagnated    int  `yaml:"kill_stagnated"`
	RefocusStagnated int  `yaml:"refocus_stagnated"`
	TargetSpecies    *int `yaml:"target_species"`
	BestCompat       bool `yaml:"best_compat"`

	Threads int `yaml:"threads"`

	GenomeFile string `yaml:"genome_file"`
	SeedGenome bool    `yaml:"seed_genome"`
}

// Validate checks the invariants an InvalidConfig error reports:
// refocus_stagnated must stay below kill_stagnated, threads must fall in
// [1,32], and seed_genome requires a genome_file to seed from.
func (o *Options) Validate() error {
	if o.RefocusStagnated >= o.KillStagnated {
		return neaterr.InvalidConfigf("refocus_stagnated (%d) must be < kill_stagnated (%d)", o.RefocusStagnated, o.KillStagnated)
	}
	if o.Threads < 1 || o.Threads > 32 {
		return neaterr.InvalidConfigf("threads (%d) must be within [1,32]", o.Threads)
	}
	if o.SeedGenome && o.GenomeFile == "" {
		return neaterr.InvalidConfigf("seed_genome requires genome_file to be set")
	}
	return nil
}

// LoadYAML reads an Options value from YAML.
func LoadYAML(r io.Reader) (*Options, error) {
	var o Options
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&o); err != nil {
		return nil, neaterr.MalformedRecord(errors.Wrap(err, "decoding yaml config"), "parsing config")
	}
	return &o, nil
}

// LoadLegacy reads an Options value from a legacy text format (one
// whitespace-separated "key value" pair per line, '#' comments; a
// "key=value" line is rejected as malformed), coercing values with
// github.com/spf13/cast.
func LoadLegacy(r io.Reader) (*Options, error) {
	o := &Options{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, neaterr.MalformedRecord(fmt.Errorf("malformed legacy config line %q", line), "parsing legacy config")
		}
		key, raw := fields[0], fields[1]
		if err := assignLegacyField(o, key, raw); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, neaterr.IO(err, "reading legacy config")
	}
	return o, nil
}

func assignLegacyField(o *Options, key, raw string) error {
	switch key {
	case "seed":
		o.Seed = cast.ToInt64(raw)
	case "generations":
		o.Generations = cast.ToInt(raw)
	case "population_size":
		o.PopulationSize = cast.ToInt(raw)
	case "c1":
		o.C1 = cast.ToFloat64(raw)
	case "c2":
		o.C2 = cast.ToFloat64(raw)
	case "c3":
		o.C3 = cast.ToFloat64(raw)
	case "compat_threshold":
		o.CompatThreshold = cast.ToFloat64(raw)
	case "survival_threshold":
		o.SurvivalThreshold = cast.ToFloat64(raw)
	case "p_perturb_or_new":
		o.PPerturbOrNew = cast.ToFloat64(raw)
	case "p_inherit_disabled":
		o.PInheritDisabled = cast.ToFloat64(raw)
	case "p_mutate_weights":
		o.PMutateWeights = cast.ToFloat64(raw)
	case "p_mutate_addnode":
		o.PMutateAddNode = cast.ToFloat64(raw)
	case "p_mutate_addconn":
		o.PMutateAddConn = cast.ToFloat64(raw)
	case "p_mutate_only":
		o.PMutateOnly = cast.ToFloat64(raw)
	case "p_mate_only":
		o.PMateOnly = cast.ToFloat64(raw)
	case "perturb_stdev":
		if strings.EqualFold(raw, "AUTO") {
			o.PerturbStdev = nil
		} else {
			v := cast.ToFloat64(raw)
			o.PerturbStdev = &v
		}
	case "kill_stagnated":
		o.KillStagnated = cast.ToInt(raw)
	case "refocus_stagnated":
		o.RefocusStagnated = cast.ToInt(raw)
	case "target_species":
		v := cast.ToInt(raw)
		o.TargetSpecies = &v
	case "best_compat":
		o.BestCompat = cast.ToBool(raw)
	case "threads":
		o.Threads = cast.ToInt(raw)
	case "genome_file":
		o.GenomeFile = raw
	case "seed_genome":
		o.SeedGenome = cast.ToBool(raw)
	default:
		return neaterr.InvalidConfigf("unknown legacy config key %q", key)
	}
	return nil
}

// ReadFromFile dispatches on file suffix: ".yml"/".yaml" decodes as
// YAML, anything else is treated as the legacy text format.
func ReadFromFile(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, neaterr.IO(err, "opening config file")
	}
	defer f.Close()

	if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") {
		return LoadYAML(f)
	}
	return LoadLegacy(f)
}
