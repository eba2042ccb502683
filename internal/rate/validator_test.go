package rate

import (
	"testing"
	"time"

	"fxsummary/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestQueryValidator_Errors(t *testing.T) {
	validator := NewValidator()

	cases := []struct {
		name      string
		start     string
		end       string
		breakdown string
		wantErr   error
		wantMsg   string
	}{
		{name: "start required", start: "", end: "2025-07-03", wantErr: ErrStartRequired},
		{name: "end required", start: "2025-07-01", end: " ", wantErr: ErrEndRequired},
		{name: "start after end", start: "2025-07-04", end: "2025-07-03", wantErr: ErrStartAfterEnd},
		{name: "bad breakdown", start: "2025-07-01", end: "2025-07-03", breakdown: "week", wantErr: ErrInvalidBreakdown},
		{name: "bad start", start: "07/01/2025", end: "2025-07-03", wantMsg: `invalid start date "07/01/2025"`},
		{name: "impossible end", start: "2025-07-01", end: "2025-02-30", wantMsg: `invalid end date "2025-02-30"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := validator.ValidateQuery(tc.start, tc.end, tc.breakdown)
			require.ErrorIs(t, err, domain.ErrValidation)
			if tc.wantErr != nil {
				require.Equal(t, tc.wantErr, err)
			}
			if tc.wantMsg != "" {
				require.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestQueryValidator_Success(t *testing.T) {
	validator := NewValidator()

	rng, breakdown, err := validator.ValidateQuery(" 2025-07-01", "2025-07-03 ", "DAY")

	require.NoError(t, err)
	require.Equal(t, domain.BreakdownDay, breakdown)
	require.True(t, rng.Start.Equal(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "2025-07-01..2025-07-03", rng.Key())
}

func TestQueryValidator_DefaultsBreakdownToNone(t *testing.T) {
	_, breakdown, err := NewValidator().ValidateQuery("2025-07-01", "2025-07-01", "")

	require.NoError(t, err)
	require.Equal(t, domain.BreakdownNone, breakdown)
}
