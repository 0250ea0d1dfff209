// Command neatrsu is the CLI entrypoint wiring dataset ingestion, config
// loading, genome seeding, the generation driver, and genome/Graphviz
// export together.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/abreis/neatrsu/neat/config"
	"github.com/abreis/neatrsu/neat/experiment"
	"github.com/abreis/neatrsu/neat/genetics"
	"github.com/abreis/neatrsu/neat/genome"
	"github.com/abreis/neatrsu/neat/genome/format"
	"github.com/abreis/neatrsu/neat/innovation"
	"github.com/abreis/neatrsu/neat/log"
	"github.com/abreis/neatrsu/neat/randsrc"
	"github.com/abreis/neatrsu/rsu/dataset"
)

var nodeLabels = map[uint16]string{
	1: "node_id", 2: "relative_time", 3: "latitude",
	4: "longitude", 5: "speed", 6: "heading",
}

func main() {
	configPath := flag.String("config", "", "path to a YAML or legacy 'key value' config file")
	trainPath := flag.String("train-data", "", "path to the training dataset CSV")
	testPath := flag.String("test-data", "", "path to an optional held-out test dataset CSV")
	genomeFile := flag.String("genome-file", "", "path to a genome file to seed from or test")
	seedGenome := flag.Bool("seed-genome", false, "seed the innovation registry from genome-file")
	testGenome := flag.Bool("test-genome", false, "load genome-file, score it against train/test data, and exit")
	outputDir := flag.String("out", "out", "output directory for the super-champion genome and DOT export")
	logLevel := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	if err := log.Init(*logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(*configPath, *trainPath, *testPath, *genomeFile, *seedGenome, *testGenome, *outputDir); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func run(configPath, trainPath, testPath, genomeFile string, seedGenomeFlag, testGenomeFlag bool, outputDir string) error {
	opts, err := config.ReadFromFile(configPath)
	if err != nil {
		return err
	}
	opts.GenomeFile = genomeFile
	opts.SeedGenome = seedGenomeFlag
	if err := opts.Validate(); err != nil {
		return err
	}

	reg := innovation.New()
	rng := randsrc.New(opts.Seed)

	train, err := loadDataset(trainPath)
	if err != nil {
		return err
	}
	train.SortByNodeThenTime()

	var test dataset.Dataset
	if testPath != "" {
		test, err = loadDataset(testPath)
		if err != nil {
			return err
		}
		test.SortByNodeThenTime()
	}

	const nInputs = 6

	if testGenomeFlag {
		return runTestGenome(opts, reg, rng, nInputs, train, test, outputDir)
	}

	population, err := buildPopulation(opts, reg, rng, nInputs)
	if err != nil {
		return err
	}

	eval := experiment.EvaluatorFunc(func(g *genome.Genome) float64 {
		return g.GetFitness(train.Rows(), false)
	})

	driver := &experiment.Driver{
		Params: driverParams(opts),
		Rng:    rng,
		Eval:   eval,
		Stats: experiment.SinkFunc(func(s experiment.GenerationSummary) {
			log.Infof("generation %d: species=%d best=%.4f mean=%.4f stddev=%.4f",
				s.Generation, s.SpeciesCount, s.BestFitness, s.MeanFitness, s.StdDevFitness)
		}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	completed, err := driver.Run(ctx, population, opts.Generations)
	if err != nil && completed == 0 {
		return err
	}
	log.Infof("completed %d/%d generations", completed, opts.Generations)

	if population.SuperChampion == nil {
		return fmt.Errorf("no super-champion produced")
	}
	return exportChampion(population.SuperChampion, outputDir)
}

func loadDataset(path string) (dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataset.Load(f)
}

func buildPopulation(opts *config.Options, reg *innovation.Registry, rng *randsrc.Source, nInputs uint16) (*genetics.Population, error) {
	if opts.GenomeFile != "" {
		f, err := os.Open(opts.GenomeFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		seed, err := format.ReadGenome(f, nInputs, reg, rng, opts.SeedGenome)
		if err != nil {
			return nil, err
		}
		genomes := make([]*genome.Genome, opts.PopulationSize)
		genomes[0] = seed
		for i := 1; i < opts.PopulationSize; i++ {
			genomes[i] = seed.Clone()
		}
		return genetics.NewPopulation(genomes, opts.CompatThreshold), nil
	}

	genomes := make([]*genome.Genome, opts.PopulationSize)
	for i := range genomes {
		genomes[i] = genome.New(nInputs, reg, rng)
	}
	return genetics.NewPopulation(genomes, opts.CompatThreshold), nil
}

func driverParams(opts *config.Options) experiment.Params {
	targetSpecies := 0
	if opts.TargetSpecies != nil {
		targetSpecies = *opts.TargetSpecies
	}
	return experiment.Params{
		PopulationSize:    opts.PopulationSize,
		C1:                opts.C1,
		C2:                opts.C2,
		C3:                opts.C3,
		SurvivalThreshold: opts.SurvivalThreshold,
		Mutation: genetics.MutationParams{
			PMutateAddNode:   opts.PMutateAddNode,
			PMutateAddConn:   opts.PMutateAddConn,
			PMutateWeights:   opts.PMutateWeights,
			PPerturbOrNew:    opts.PPerturbOrNew,
			PInheritDisabled: opts.PInheritDisabled,
			PMutateOnly:      opts.PMutateOnly,
			PMateOnly:        opts.PMateOnly,
		},
		PerturbStdev:     opts.PerturbStdev,
		KillStagnated:    opts.KillStagnated,
		RefocusStagnated: opts.RefocusStagnated,
		TargetSpecies:    targetSpecies,
		ThresholdDelta:   0.01,
		BestCompat:       opts.BestCompat,
		Threads:          opts.Threads,
	}
}

func exportChampion(champion *genome.Genome, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	genomePath := outputDir + "/champion.genome"
	gf, err := os.Create(genomePath)
	if err != nil {
		return err
	}
	defer gf.Close()
	if err := format.WriteGenome(gf, champion); err != nil {
		return err
	}

	dotPath := outputDir + "/champion.gv"
	df, err := os.Create(dotPath)
	if err != nil {
		return err
	}
	defer df.Close()
	return format.WriteDOT(df, champion, nodeLabels)
}

// runTestGenome loads a genome, scores it against train and optionally
// test data with predictions stored, and writes both out as CSV pairs
// of (contact_time, prediction).
func runTestGenome(opts *config.Options, reg *innovation.Registry, rng *randsrc.Source, nInputs uint16, train, test dataset.Dataset, outputDir string) error {
	f, err := os.Open(opts.GenomeFile)
	if err != nil {
		return err
	}
	defer f.Close()
	g, err := format.ReadGenome(f, nInputs, reg, rng, opts.SeedGenome)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	trainFitness := g.GetFitness(train.Rows(), true)
	log.Infof("training fitness: %.4f", trainFitness)
	if err := writePredictions(outputDir+"/training.csv", train); err != nil {
		return err
	}

	if test != nil {
		testFitness := g.GetFitness(test.Rows(), true)
		log.Infof("test fitness: %.4f", testFitness)
		if err := writePredictions(outputDir+"/test.csv", test); err != nil {
			return err
		}
	}
	return nil
}

func writePredictions(path string, d dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "contact_time,prediction"); err != nil {
		return err
	}
	for _, r := range d {
		if _, err := fmt.Fprintf(f, "%d,%d\n", r.ContactTime, r.Prediction); err != nil {
			return err
		}
	}
	return nil
}
