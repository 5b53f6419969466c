package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gridwatch/riskgen/pkg/scenario"
)

type rootFlags struct {
	configPath string
	seed       int64
	start      string
	end        string
	outputDir  string
	debug      bool
}

func main() {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "riskgen",
		Short: "Deterministic equipment-risk dataset generator for the distribution fleet",
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "scenario YAML file")
	rootCmd.PersistentFlags().Int64Var(&flags.seed, "seed", 42, "random seed")
	rootCmd.PersistentFlags().StringVar(&flags.start, "start", "", "first month (YYYY-MM)")
	rootCmd.PersistentFlags().StringVar(&flags.end, "end", "", "last month, inclusive (YYYY-MM)")
	rootCmd.PersistentFlags().StringVarP(&flags.outputDir, "out", "o", "", "output directory")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd(flags))
	rootCmd.AddCommand(validateCmd(flags))
	rootCmd.AddCommand(summaryCmd(flags))
	rootCmd.AddCommand(modelCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the observation and threshold tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := resolveScenario(cmd, flags)
			if err != nil {
				return err
			}
			return runGenerate(sc, flags.debug)
		},
	}
}

func validateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the scenario, catalog, and report bindings without generating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := resolveScenario(cmd, flags)
			if err != nil {
				return err
			}
			return runValidate(sc)
		},
	}
}

func summaryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Generate in memory and print fleet aggregates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := resolveScenario(cmd, flags)
			if err != nil {
				return err
			}
			return runSummary(sc)
		},
	}
}

func modelCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Validate and emit the downstream report data model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := resolveScenario(cmd, flags)
			if err != nil {
				return err
			}
			return runModel(sc, flags.debug)
		},
	}
}

// resolveScenario layers flag overrides on top of the config file (or the
// defaults when no file is given).
func resolveScenario(cmd *cobra.Command, flags *rootFlags) (scenario.Scenario, error) {
	sc := scenario.Default()
	if flags.configPath != "" {
		loaded, err := scenario.Load(flags.configPath)
		if err != nil {
			return sc, err
		}
		sc = loaded
	}

	if cmd.Flags().Changed("seed") {
		sc.Seed = flags.seed
	}
	if flags.start != "" {
		sc.Start = flags.start
	}
	if flags.end != "" {
		sc.End = flags.end
	}
	if flags.outputDir != "" {
		sc.OutputDir = flags.outputDir
	}
	return sc, nil
}
