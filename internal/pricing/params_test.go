package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOptionType(t *testing.T) {
	tests := []struct {
		token   string
		want    OptionType
		wantErr bool
	}{
		{"call", Call, false},
		{"put", Put, false},
		{"Call", "", true},
		{"PUT", "", true},
		{"straddle", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		got, err := ParseOptionType(test.token)
		if test.wantErr {
			require.ErrorIs(t, err, ErrInvalidParameter, "token %q", test.token)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, test.want, got)
	}
}

func TestNewOptionParamsRejects(t *testing.T) {
	base := func() []any {
		return []any{100.0, 110.0, 0.05, 1.0, 10, 0.0, 0.0, 0.0, 0.3, "call", false}
	}
	build := func(a []any) error {
		_, err := NewOptionParams(a[0].(float64), a[1].(float64), a[2].(float64), a[3].(float64), a[4].(int),
			a[5].(float64), a[6].(float64), a[7].(float64), a[8].(float64), a[9].(string), a[10].(bool))
		return err
	}
	require.NoError(t, build(base()))

	tests := []struct {
		name  string
		index int
		value any
	}{
		{"zero spot", 0, 0.0},
		{"negative spot", 0, -1.0},
		{"zero strike", 1, 0.0},
		{"nan rate", 2, math.NaN()},
		{"zero maturity", 3, 0.0},
		{"zero steps", 4, 0},
		{"negative steps", 4, -3},
		{"negative dividend", 7, -0.01},
		{"zero volatility", 8, 0.0},
		{"infinite volatility", 8, math.Inf(1)},
		{"straddle", 9, "straddle"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := base()
			a[test.index] = test.value
			err := build(a)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestNewOptionParamsChecksTypeFirst(t *testing.T) {
	// every numeric input is also invalid; the token must be reported
	_, err := NewOptionParams(-1, -1, 0, -1, 0, 0, 0, -1, -1, "straddle", false)
	require.ErrorIs(t, err, ErrInvalidParameter)
	require.Contains(t, err.Error(), "straddle")
}

func TestOptionParamsKeepsAdvisoryProbabilities(t *testing.T) {
	o, err := NewOptionParams(100, 110, 0.05, 1, 10, 0.02, 0.03, 0, 0.3, "put", true)
	require.NoError(t, err)
	require.Equal(t, 0.02, o.UpProb)
	require.Equal(t, 0.03, o.DownProb)
	require.Equal(t, Put, o.Type)
	require.False(t, o.IsCall())
	require.True(t, o.American)
}

func TestExercise(t *testing.T) {
	call := OptionParams{Strike: 100, Type: Call}
	put := OptionParams{Strike: 100, Type: Put}

	require.Equal(t, 20.0, call.exercise(120))
	require.Equal(t, 0.0, call.exercise(80))
	require.Equal(t, 0.0, put.exercise(120))
	require.Equal(t, 20.0, put.exercise(80))
}

func TestWithHelpersCopy(t *testing.T) {
	o := OptionParams{Maturity: 1, Volatility: 0.2, Rate: 0.01}
	_ = o.withMaturity(2)
	_ = o.withVolatility(0.5)
	_ = o.withRate(0.1)
	require.Equal(t, OptionParams{Maturity: 1, Volatility: 0.2, Rate: 0.01}, o)
}
