package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"gonum.org/v1/gonum/mat"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/data"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/pipeline"
)

var (
	transformData    string
	transformModel   string
	transformMode    string
	transformOutput  string
	transformPreview int
)

func TransformConfigOut(logger *slog.Logger) {
	logger.Info("configuration",
		slog.String("data", transformData),
		slog.String("model", transformModel),
		slog.String("mode", transformMode),
		slog.String("output", transformOutput),
		slog.Int("preview", transformPreview),
	)
}

// Transform encodes the dataset and previews it or writes it as CSV. With
// -model the fitted transformer of an artifact is used, otherwise a new one
// is fitted on the dataset.
func Transform(cmd *commander.Command, args []string) error {
	logger := newLogger()
	TransformConfigOut(logger)

	table, err := data.LoadAndClean(transformData)
	if err != nil {
		return err
	}

	var (
		ct *pipeline.ColumnTransformer
		X  *mat.Dense
	)
	if transformModel != "" {
		if ct, err = loadTransformer(transformModel); err != nil {
			return err
		}
		X, err = ct.Transform(table)
	} else {
		ct = pipeline.Build()
		X, err = ct.FitTransform(table)
	}
	if err != nil {
		return err
	}
	headers := ct.FeatureNames()

	switch transformMode {
	case "cli":
		previewData(headers, X, transformPreview)
	case "csv":
		out := transformOutput
		if out == "" {
			out = filepath.Join(filepath.Dir(transformData), "processed_"+filepath.Base(transformData))
		}
		if err := writeCSV(out, headers, X); err != nil {
			return err
		}
		logger.Info("encoded dataset written", slog.String("path", out), slog.Int("rows", table.Len()))
	default:
		return fmt.Errorf("transform: unknown mode %q (want cli or csv)", transformMode)
	}
	return nil
}

func loadTransformer(path string) (*pipeline.ColumnTransformer, error) {
	ct, _, err := loadModel(path)
	return ct, err
}

// previewData prints the first n rows under their feature names.
func previewData(headers []string, X *mat.Dense, n int) {
	rows, _ := X.Dims()
	if n > rows {
		n = rows
	}
	for _, h := range headers {
		fmt.Printf("%-26s", h)
	}
	fmt.Println()
	for i := 0; i < n; i++ {
		for _, v := range X.RawRowView(i) {
			fmt.Printf("%-26.6f", v)
		}
		fmt.Println()
	}
}

func writeCSV(path string, headers []string, X *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	rows, cols := X.Dims()
	rec := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j, v := range X.RawRowView(i) {
			rec[j] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func TransformCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Transform,
		UsageLine: "transform <file options> [arguments]",
		Short:     "encode the dataset into the classifier's feature matrix",
		Long: `
encode the dataset into the classifier's feature matrix and preview it in the
console or save it as CSV

	$ ./creditrisk transform -data <csv file> [-model <artifact file>] [-mode cli|csv] [options]

`,
		Flag: *flag.NewFlagSet("transform", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&transformData, "data", cfg.DataPath, "German Credit CSV file")
	cmd.Flag.StringVar(&transformModel, "model", "", "artifact whose fitted transformer is applied (default: fit on the data)")
	cmd.Flag.StringVar(&transformMode, "mode", "cli", "output mode: cli or csv")
	cmd.Flag.StringVar(&transformOutput, "output", "", "CSV output path (default: processed_<data> next to the input)")
	cmd.Flag.IntVar(&transformPreview, "preview", 5, "number of rows to preview in console")
	return cmd
}
