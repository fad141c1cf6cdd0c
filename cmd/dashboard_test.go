package main

import (
	"testing"
	"time"

	gerr "github.com/jekabolt/retail-dashboard/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRange(t *testing.T) {
	kyiv := time.FixedZone("EET", 2*60*60)

	tests := []struct {
		name     string
		args     []string
		loc      *time.Location
		wantFrom time.Time
		wantTo   time.Time
		wantErr  error
	}{
		{
			name:     "bare dates",
			args:     []string{"--from", "2024-01-01", "--to", "2024-01-02"},
			loc:      time.UTC,
			wantFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:     "bare dates in zone",
			args:     []string{"--from=2024-03-01", "--to=2024-03-01"},
			loc:      kyiv,
			wantFrom: time.Date(2024, 3, 1, 0, 0, 0, 0, kyiv),
			wantTo:   time.Date(2024, 3, 2, 0, 0, 0, 0, kyiv).Add(-time.Nanosecond),
		},
		{
			name:     "rfc3339",
			args:     []string{"--from", "2024-01-01T10:00:00Z", "--to", "2024-01-01T18:30:00Z"},
			loc:      time.UTC,
			wantFrom: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC),
		},
		{
			name:    "inverted range",
			args:    []string{"--from", "2024-02-01", "--to", "2024-01-01"},
			loc:     time.UTC,
			wantErr: gerr.ErrInvalidDateRange,
		},
		{
			name:    "bad date",
			args:    []string{"--from", "01/02/2024", "--to", "2024-01-03"},
			loc:     time.UTC,
			wantErr: gerr.ErrBadRequest,
		},
		{
			name:    "missing to",
			args:    []string{"--from", "2024-01-01"},
			loc:     time.UTC,
			wantErr: gerr.ErrBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "dashboard"}
			addRangeFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			from, to, err := dashboardRange(cmd, tt.loc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantFrom.Equal(from), "from %s", from)
			assert.True(t, tt.wantTo.Equal(to), "to %s", to)
		})
	}
}
