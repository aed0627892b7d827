package dataprep

import (
	"math"
	"strconv"
)

// missingTokens are the cell values read as missing. They follow the default
// NA set of the pandas CSV reader so the same rows are discarded here as in
// the notebook that trained the model.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell value denotes a missing value.
func IsMissing(v string) bool {
	_, ok := missingTokens[v]
	return ok
}

// DropIncomplete removes every row holding a missing value in any column.
// Partial rows are discarded, never imputed. It returns the kept rows and
// the number of rows dropped.
func DropIncomplete(rows [][]string) ([][]string, int) {
	kept := rows[:0:0]
	for _, row := range rows {
		complete := true
		for _, v := range row {
			if IsMissing(v) {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, row)
		}
	}
	return kept, len(rows) - len(kept)
}

// CategoricalToken returns the string token of a category that may have
// been written as a number. Integral numbers lose any fractional rendering,
// so "2", "2.0" and "2e0" all become "2"; other values are returned as is.
func CategoricalToken(v string) string {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return v
	}
	return strconv.FormatInt(int64(f), 10)
}
