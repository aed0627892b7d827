package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/model"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/pipeline"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/risk"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
)

var (
	predictModel string
	predictJSON  bool
	applicant    risk.Applicant
)

func PredictConfigOut(logger *slog.Logger) {
	logger.Info("configuration",
		slog.String("model", predictModel),
		slog.Bool("json", predictJSON),
	)
}

func loadModel(path string) (*pipeline.ColumnTransformer, *model.LogisticRegression, error) {
	ct, clf, err := model.LoadArtifact(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return ct, clf, nil
}

// jobToken accepts either the Job token or its skill description.
func jobToken(v string) string {
	for token, label := range schema.JobLevels() {
		if strings.EqualFold(v, label) {
			return token
		}
	}
	return v
}

func Predict(cmd *commander.Command, args []string) error {
	logger := newLogger()
	PredictConfigOut(logger)

	ct, clf, err := loadModel(predictModel)
	if err != nil {
		return err
	}
	svc, err := risk.NewService(ct, clf, risk.WithLogger(logger))
	if err != nil {
		return err
	}

	a := applicant
	a.Job = jobToken(a.Job)
	out, err := svc.Assess(context.Background(), a)
	if err != nil {
		return err
	}

	if predictJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Printf("%s\n", out.RiskLevel)
	fmt.Printf("%s %s\n", out.Headline, out.HeadlineLabel)
	fmt.Println()
	fmt.Println("Key factors:")
	for _, f := range out.Factors {
		mark := " "
		if f.Warn {
			mark = "!"
		}
		fmt.Printf("  %s %s\n", mark, f.Label)
	}
	fmt.Println()
	fmt.Printf("Recommendation: %s\n", out.Recommendation)
	return nil
}

func PredictCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Predict,
		UsageLine: "predict <applicant options> [arguments]",
		Short:     "assess one applicant with a trained model",
		Long: `
assess one applicant with a trained model artifact

	$ ./creditrisk predict -model <artifact file> -age 35 -sex male -job 2 -housing own \
		-saving little -checking moderate -amount 5000 -duration 24 -purpose car

`,
		Flag: *flag.NewFlagSet("predict", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&predictModel, "model", cfg.ModelPath, "model artifact file")
	cmd.Flag.BoolVar(&predictJSON, "json", false, "print the assessment as JSON")
	cmd.Flag.IntVar(&applicant.Age, "age", 35, "age in years (18-100)")
	cmd.Flag.StringVar(&applicant.Sex, "sex", "male", "female or male")
	cmd.Flag.StringVar(&applicant.Job, "job", "2", "job level 0-3 or its description, e.g. skilled")
	cmd.Flag.StringVar(&applicant.Housing, "housing", "own", "own, free or rent")
	cmd.Flag.StringVar(&applicant.SavingAccounts, "saving", "little", "little, moderate, quite rich or rich")
	cmd.Flag.StringVar(&applicant.CheckingAccount, "checking", "little", "little, moderate or rich")
	cmd.Flag.IntVar(&applicant.CreditAmount, "amount", 5000, "credit amount (100-200000)")
	cmd.Flag.IntVar(&applicant.Duration, "duration", 24, "duration in months (1-120)")
	cmd.Flag.StringVar(&applicant.Purpose, "purpose", "car", "loan purpose, e.g. radio/TV, car, business")
	return cmd
}
