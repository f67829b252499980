package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/analysis"
	"github.com/agourakis82/darwin-scaffold-studio-sub000/pkg/config"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "scaffoldperc.yaml", "Path to the YAML sweep configuration")
	sizesFlag := flag.String("sizes", "", "Comma-separated system sizes, overrides the config (e.g. 16,24,32)")
	seedFlag := flag.Uint64("seed", 0, "Base random seed, overrides the config when non-zero")
	coresFlag := flag.Int("cores", 0, "Number of CPU cores to use, overrides the config when non-zero")
	typeFlag := flag.String("type", "", "Percolation model (site/bond/correlated), overrides the config")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *writeConfig {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Apply command line overrides
	if *sizesFlag != "" {
		sizes, err := parseSizes(*sizesFlag)
		if err != nil {
			log.Fatalf("Invalid -sizes value: %v", err)
		}
		cfg.Volume.Sizes = sizes
	}
	if *seedFlag != 0 {
		cfg.Sweep.Seed = *seedFlag
	}
	if *coresFlag != 0 {
		cfg.Output.NumCores = *coresFlag
	}
	if *typeFlag != "" {
		cfg.Volume.Type = *typeFlag
	}

	if cfg.Output.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	params, err := cfg.Params()
	if err != nil {
		log.Fatalf("Invalid sweep configuration: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("PERCOLATION-TOPOLOGY-TRANSPORT ANALYSIS")
	fmt.Printf("Model: %s  Sizes: %v  Seed: %d\n", params.Kind, params.Sizes, params.Seed)
	fmt.Println("================================")

	// Allow the sweep to be aborted between tasks with Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer := analysis.NewAnalyzer(params)
	analyzer.SetLogger(log)

	startTime := time.Now()
	result, err := analyzer.Run(ctx)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	fmt.Printf("\nSweep completed in %.2f seconds (%d conditions)\n\n",
		time.Since(startTime).Seconds(), len(result.Conditions))

	printConditionTable(result)
	printScalingSummary(result, params.Sizes)
}

// parseSizes parses a comma-separated list of system sizes.
func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		l, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, l)
	}
	return sizes, nil
}

// printConditionTable tabulates the per-condition summaries.
func printConditionTable(result *analysis.BatchResult) {
	fmt.Println("   L       p   perc.frac  porosity   tau_geo   tau_hyd    beta0     chi    box-D")
	fmt.Println("------------------------------------------------------------------------------------")
	for _, c := range result.Conditions {
		fmt.Printf("%4d  %6.3f  %9.2f  %8.3f  %8.3f  %8.3f  %7.1f  %6.1f  %7.3f\n",
			c.L, c.P, c.PercolationFraction, c.MeanPorosity,
			c.Geodesic.Mean, c.Hydraulic.Mean, c.MeanBetti0, c.MeanEuler, c.BoxDimension.Mean)
	}
}

// printScalingSummary prints the per-size divergence fits and the
// finite-size extrapolation of the tortuosity exponent.
func printScalingSummary(result *analysis.BatchResult, sizes []int) {
	fmt.Println("\nPower-law fits of geodesic tortuosity, tau(p) = A*(p-pc)^(-mu):")
	for _, l := range sizes {
		fit := result.FitGeodesicDivergence(l)
		if fit.Underdetermined() {
			fmt.Printf("  L=%-4d underdetermined (%d usable points)\n", l, fit.Points)
			continue
		}
		fmt.Printf("  L=%-4d pc=%.4f  mu=%.3f +/- %.3f  A=%.3f  R2=%.4f  (%d points)\n",
			l, fit.X0, fit.Exponent, fit.ExponentErr, fit.Amplitude, fit.R2, fit.Points)
	}

	summary := result.FiniteSizeScaling(sizes)
	fmt.Printf("\nFinite-size scaling over %d sizes: trend=%s  delta-mu=%.4f  mu(inf)=%.4f\n",
		summary.Sizes, summary.Trend, summary.DeltaMu, summary.MuInfinity)
}
