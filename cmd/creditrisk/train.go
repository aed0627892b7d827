package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"gonum.org/v1/gonum/mat"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/data"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/loader"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/model"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/pipeline"
)

var (
	trainData      string
	trainOut       string
	trainTestRatio float64
	trainEpochs    int
	trainLr        float64
	trainBatch     int
	trainL2        float64
	trainThreshold float64
	trainSeed      int64
	trainPlotDir   string
	trainStratify  bool
)

func TrainConfigOut(logger *slog.Logger) {
	logger.Info("configuration",
		slog.String("data", trainData),
		slog.String("out", trainOut),
		slog.Float64("test_ratio", trainTestRatio),
		slog.Int("epochs", trainEpochs),
		slog.Float64("learning_rate", trainLr),
		slog.Int("batch_size", trainBatch),
		slog.Float64("l2", trainL2),
		slog.Float64("threshold", trainThreshold),
		slog.Int64("seed", trainSeed),
		slog.String("plot_dir", trainPlotDir),
		slog.Bool("stratify", trainStratify),
	)
}

func Train(cmd *commander.Command, args []string) error {
	logger := newLogger()
	TrainConfigOut(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := data.LoadAndClean(trainData)
	if err != nil {
		return err
	}
	y, err := data.Labels(table)
	if err != nil {
		return err
	}

	ct := pipeline.Build()
	X, err := ct.FitTransform(table)
	if err != nil {
		return fmt.Errorf("fit transformer: %w", err)
	}
	logger.Info("transformer fitted", slog.Int("rows", table.Len()), slog.Int("features", ct.Width()))

	rng := rand.New(rand.NewSource(trainSeed))
	trainIdx, testIdx := split(rng, y, trainTestRatio, trainStratify)
	if len(trainIdx) == 0 {
		return fmt.Errorf("train: test ratio %v leaves no training rows", trainTestRatio)
	}
	Xtr, ytr := subset(X, y, trainIdx)

	clf := model.NewLogisticRegression(ct.Width(),
		model.WithLearningRate(trainLr),
		model.WithEpochs(trainEpochs),
		model.WithBatchSize(trainBatch),
		model.WithL2(trainL2),
		model.WithThreshold(trainThreshold),
		model.WithSeed(trainSeed),
	)
	if err := clf.Fit(ctx, Xtr, ytr); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	// Without a held-out set the report falls back to the training rows.
	Xev, yev := Xtr, ytr
	if len(testIdx) > 0 {
		Xev, yev = subset(X, y, testIdx)
	}
	metrics, err := evaluate(clf, Xev, yev)
	if err != nil {
		return err
	}
	logger.Info("evaluation",
		slog.Int("train_rows", len(trainIdx)),
		slog.Int("test_rows", len(testIdx)),
		slog.Float64("accuracy", metrics["accuracy"]),
		slog.Float64("precision", metrics["precision"]),
		slog.Float64("recall", metrics["recall"]),
		slog.Float64("f1", metrics["f1"]),
		slog.Float64("log_loss", metrics["log_loss"]),
	)

	if trainPlotDir != "" {
		if err := writePlots(clf, Xev, yev, trainPlotDir); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		logger.Info("plots written", slog.String("dir", trainPlotDir))
	}

	a, err := model.NewArtifact(ct, clf, metrics)
	if err != nil {
		return err
	}
	if err := model.SaveArtifact(trainOut, a); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	logger.Info("artifact written", slog.String("path", trainOut))
	return nil
}

func evaluate(clf *model.LogisticRegression, X *mat.Dense, y []float64) (map[string]float64, error) {
	proba, err := clf.PredictProba(X)
	if err != nil {
		return nil, err
	}
	pred, err := clf.Predict(X)
	if err != nil {
		return nil, err
	}
	truth := model.Labels(y)
	prec, rec, f1 := model.PrecisionRecallF1(truth, pred)
	return map[string]float64{
		"accuracy":  model.Accuracy(truth, pred),
		"precision": prec,
		"recall":    rec,
		"f1":        f1,
		"log_loss":  model.LogLoss(truth, proba),
	}, nil
}

func writePlots(clf *model.LogisticRegression, X *mat.Dense, y []float64, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := plotLossCurve(clf.History, filepath.Join(dir, "loss.png")); err != nil {
		return err
	}
	proba, err := clf.PredictProba(X)
	if err != nil {
		return err
	}
	return plotScores(proba, model.Labels(y), clf.Threshold, filepath.Join(dir, "scores.png"))
}

// split holds out testRatio of the rows, per class when stratify is set.
func split(rng *rand.Rand, y []float64, testRatio float64, stratify bool) (train, test []int) {
	if stratify {
		return loader.StratifiedSplit(rng, y, testRatio)
	}
	return loader.TrainTestSplit(rng, len(y), testRatio)
}

// subset copies the rows idx of X and y. idx must not be empty.
func subset(X *mat.Dense, y []float64, idx []int) (*mat.Dense, []float64) {
	_, c := X.Dims()
	out := mat.NewDense(len(idx), c, nil)
	labels := make([]float64, len(idx))
	for i, r := range idx {
		out.SetRow(i, X.RawRowView(r))
		labels[i] = y[r]
	}
	return out, labels
}

func TrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Train,
		UsageLine: "train <file options> [arguments]",
		Short:     "fit the feature transformer and classifier and write the model artifact",
		Long: `
fit the feature transformer on the dataset, train a logistic regression on a
held-out split (stratified unless -stratify=false) and write transformer
state and weights to one JSON artifact

	$ ./creditrisk train -data <csv file> -out <artifact file> [options]

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&trainData, "data", cfg.DataPath, "German Credit CSV file")
	cmd.Flag.StringVar(&trainOut, "out", cfg.ModelPath, "output artifact file")
	cmd.Flag.Float64Var(&trainTestRatio, "test-ratio", 0.2, "fraction of rows held out for evaluation")
	cmd.Flag.IntVar(&trainEpochs, "epochs", 200, "training epochs")
	cmd.Flag.Float64Var(&trainLr, "lr", 0.1, "learning rate")
	cmd.Flag.IntVar(&trainBatch, "batch", 32, "mini-batch size")
	cmd.Flag.Float64Var(&trainL2, "l2", 0.001, "L2 penalty")
	cmd.Flag.Float64Var(&trainThreshold, "threshold", 0.5, "probability of good credit above which an applicant is classed good")
	cmd.Flag.Int64Var(&trainSeed, "seed", 42, "random seed for split and shuffling")
	cmd.Flag.StringVar(&trainPlotDir, "plot-dir", "", "write loss and score plots (PNG) to this directory")
	cmd.Flag.BoolVar(&trainStratify, "stratify", true, "keep the class balance of the labels in the test set")
	return cmd
}
