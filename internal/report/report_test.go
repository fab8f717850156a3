package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-lattice/internal/pricing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int32
		want   string
	}{
		{10.0200771, 4, "10.0201"},
		{-7.98106918, 3, "-7.981"},
		{0.5, 0, "1"},
		{-0.5, 0, "-1"},
		{2, 6, "2"},
	}
	for _, test := range tests {
		require.Equal(t, test.want, Round(test.v, test.places), "Round(%v, %d)", test.v, test.places)
	}
}

func sampleRows() []Row {
	o := pricing.OptionParams{Spot: 100, Strike: 110, Rate: 0.05, Maturity: 1, Steps: 1025, Volatility: 0.3, Type: pricing.Call, American: true}
	res := pricing.Result{Price: 10.0200771, Delta: 0.4996169, Gamma: 0.0133012, Theta: -7.9810692, Vega: 39.8942042, Rho: 39.9386825}
	return []Row{
		NewRow("a", o, pricing.LeisenReimer, res, 4),
		FailedRow("b", o, pricing.CoxRossRubinstein, errors.New("boom")),
	}
}

func TestNewRowAndFailedRow(t *testing.T) {
	rows := sampleRows()
	require.Equal(t, "10.0201", rows[0].Price)
	require.Equal(t, "-7.9811", rows[0].Theta)
	require.Equal(t, "leisen-reimer", rows[0].Scheme)
	require.Equal(t, "call", rows[0].Type)
	require.Empty(t, rows[0].Error)

	require.Equal(t, "crr", rows[1].Scheme)
	require.Equal(t, "boom", rows[1].Error)
	require.Empty(t, rows[1].Price)
}

func TestWriteJSONAndCSV(t *testing.T) {
	dir := t.TempDir()
	rows := sampleRows()
	require.NoError(t, WriteJSON(rows, dir))
	require.NoError(t, WriteCSV(rows, dir))

	b, err := os.ReadFile(filepath.Join(dir, "results.json"))
	require.NoError(t, err)
	var decoded []Row
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, rows, decoded)

	b, err = os.ReadFile(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "id,type,american,scheme,s0,k,r,t,n,div,sigma,price"))
	require.Contains(t, lines[1], "10.0201")
	require.Contains(t, lines[2], "boom")
}
