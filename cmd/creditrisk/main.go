package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/config"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/observability"
)

// cfg holds the environment configuration. Subcommand flags default to it.
var cfg config.Config

func rootCmd() *commander.Command {
	return &commander.Command{
		UsageLine: os.Args[0],
		Short:     "German Credit risk model",
		Long: `
train, inspect and serve the German Credit risk classifier

	$ creditrisk train -data german_credit_data.csv -out models/credit_risk.json
	$ creditrisk transform -data german_credit_data.csv -mode csv
	$ creditrisk predict -model models/credit_risk.json -age 35 -sex male ...
	$ creditrisk serve
`,
		Subcommands: []*commander.Command{
			TrainCmd(),
			TransformCmd(),
			PredictCmd(),
			ServeCmd(),
		},
		Flag: *flag.NewFlagSet("creditrisk", flag.ExitOnError),
	}
}

func newLogger() *slog.Logger {
	return observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
}

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}
