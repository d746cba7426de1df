package finviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"28.5", f(28.5)},
		{"147.00%", f(147)},
		{"1,234.5", f(1234.5)},
		{"-12.3%", f(-12.3)},
		{"-", nil},
		{"", nil},
		{"  ", nil},
		{"N/A", nil},
		{"12.3.4", nil},
	}
	for _, tt := range tests {
		got := ParseMetric(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.in)
			continue
		}
		require.NotNil(t, got, "input %q", tt.in)
		assert.InDelta(t, *tt.want, *got, 1e-9, "input %q", tt.in)
	}
}

func TestSnapshotFundamentals(t *testing.T) {
	snap := Snapshot{
		"P/E":           "12.1",
		"Forward P/E":   "10.8",
		"EPS next 5Y":   "12.50%",
		"ROE":           "10.20%",
		"Debt/Eq":       "1.08",
		"Profit Margin": "27.1%",
		"Insider Own":   "0.10%",
		"Dividend %":    "-",
	}

	fu := snap.Fundamentals()
	require.NotNil(t, fu.PE)
	assert.Equal(t, 12.1, *fu.PE)
	require.NotNil(t, fu.EPSGrowthNext)
	assert.Equal(t, 12.5, *fu.EPSGrowthNext)
	require.NotNil(t, fu.InsiderOwn)
	assert.Equal(t, 0.1, *fu.InsiderOwn)
	assert.Nil(t, fu.DividendYld) // "-" parses to absent
	assert.Nil(t, fu.CurrentRatio)
}
