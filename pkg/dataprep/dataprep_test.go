package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "NA", "NaN", "nan", "null", "None", "N/A", "<NA>"} {
		assert.True(t, IsMissing(v), "%q", v)
	}
	for _, v := range []string{"little", "0", "none", " ", "na"} {
		assert.False(t, IsMissing(v), "%q", v)
	}
}

func TestDropIncomplete(t *testing.T) {
	rows := [][]string{
		{"35", "little", "own"},
		{"22", "", "own"},
		{"41", "moderate", "NA"},
		{"50", "rich", "free"},
	}

	kept, dropped := DropIncomplete(rows)

	assert.Equal(t, 2, dropped)
	assert.Equal(t, [][]string{{"35", "little", "own"}, {"50", "rich", "free"}}, kept)
	assert.Len(t, rows, 4, "input is not modified")
}

func TestCategoricalToken(t *testing.T) {
	tests := map[string]string{
		"2":       "2",
		"2.0":     "2",
		"3.00":    "3",
		"0":       "0",
		"2.5":     "2.5",
		"skilled": "skilled",
		"NaN":     "NaN",
	}
	for in, want := range tests {
		assert.Equal(t, want, CategoricalToken(in), in)
	}
}

func TestOneHotEncoder_DropFirst(t *testing.T) {
	e := NewOneHotEncoder(true)
	require.NoError(t, e.Fit([]string{"rent", "own", "free", "own"}))

	assert.Equal(t, []string{"free", "own", "rent"}, e.Categories())
	assert.Equal(t, "free", e.Dropped())
	assert.Equal(t, 2, e.Width())
	assert.Equal(t, []string{"Housing_own", "Housing_rent"}, e.FeatureNames("Housing"))

	for v, want := range map[string][]float64{
		"free": {0, 0},
		"own":  {1, 0},
		"rent": {0, 1},
	} {
		dst := []float64{9, 9}
		require.NoError(t, e.Encode(v, dst))
		assert.Equal(t, want, dst, v)
	}
}

func TestOneHotEncoder_KeepAll(t *testing.T) {
	e := NewOneHotEncoder(false)
	require.NoError(t, e.Fit([]string{"male", "female"}))

	assert.Equal(t, "", e.Dropped())
	assert.Equal(t, 2, e.Width())

	dst := []float64{7, 7}
	require.NoError(t, e.Encode("male", dst))
	assert.Equal(t, []float64{0, 1}, dst)
}

func TestOneHotEncoder_Errors(t *testing.T) {
	e := NewOneHotEncoder(true)
	assert.ErrorIs(t, e.Encode("own", make([]float64, 2)), ErrNotFitted)
	assert.ErrorIs(t, e.Fit(nil), ErrEmptyColumn)

	require.NoError(t, e.Fit([]string{"own", "free"}))
	assert.ErrorIs(t, e.Fit([]string{"own"}), ErrAlreadyFitted)
	assert.ErrorIs(t, e.Encode("Own", make([]float64, 1)), ErrUnseenCategory)
}

func TestOneHotEncoder_SetCategories(t *testing.T) {
	assert.Error(t, NewOneHotEncoder(true).SetCategories([]string{"rent", "own"}), "unsorted")
	assert.Error(t, NewOneHotEncoder(true).SetCategories([]string{"own", "own"}), "duplicate")
	assert.ErrorIs(t, NewOneHotEncoder(true).SetCategories(nil), ErrEmptyColumn)

	e := NewOneHotEncoder(true)
	require.NoError(t, e.SetCategories([]string{"free", "own", "rent"}))
	assert.True(t, e.Fitted())
	assert.Equal(t, 2, e.Width())
}

func TestOrdinalEncoder(t *testing.T) {
	e := NewOrdinalEncoder()
	require.NoError(t, e.Fit([]string{"2", "0", "3", "1", "2"}))
	assert.Equal(t, []string{"0", "1", "2", "3"}, e.Categories())

	for _, v := range []string{"3", "0", "2"} {
		r, err := e.Encode(v)
		require.NoError(t, err)
		assert.Equal(t, float64(v[0]-'0'), r, v)
	}

	_, err := e.Encode("4")
	assert.ErrorIs(t, err, ErrUnseenCategory)
	assert.ErrorIs(t, e.Fit([]string{"1"}), ErrAlreadyFitted)

	_, err = NewOrdinalEncoder().Encode("1")
	assert.ErrorIs(t, err, ErrNotFitted)
}
