package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Policy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     Spec
		wantKind Kind
		wantErr  error
	}{
		{name: "interval", spec: Spec{Every: "90"}, wantKind: KindInterval},
		{name: "interval duration", spec: Spec{Every: "1m30s"}, wantKind: KindInterval},
		{name: "at", spec: Spec{AtDate: "2026-10-20", AtTime: "09:00"}, wantKind: KindAt},
		{name: "at date only", spec: Spec{AtDate: "10/20/26"}, wantKind: KindAt},
		{name: "daily", spec: Spec{Daily: "08:30:00"}, wantKind: KindRecurring},
		{name: "cron", spec: Spec{Cron: "0 0 9 * * MON-FRI"}, wantKind: KindRecurring},
		{name: "nothing", spec: Spec{}, wantErr: ErrNoPolicy},
		{name: "blank fields", spec: Spec{Every: "  ", Cron: " "}, wantErr: ErrNoPolicy},
		{name: "time without date", spec: Spec{AtTime: "09:00"}, wantErr: ErrInvalidTime},
		{name: "two schedules", spec: Spec{Every: "30", Daily: "08:00"}, wantErr: ErrAmbiguousPolicy},
		{name: "bad interval", spec: Spec{Every: "-5"}, wantErr: ErrInvalidInterval},
		{name: "bad date", spec: Spec{AtDate: "2026-13-40"}, wantErr: ErrInvalidTime},
		{name: "bad cron", spec: Spec{Cron: "every day"}, wantErr: ErrInvalidCron},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := tt.spec.Policy(time.UTC)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, p.Kind())
		})
	}
}

func TestSpec_PolicyLocation(t *testing.T) {
	t.Parallel()

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		spec Spec
		want time.Time
	}{
		{
			name: "daily",
			spec: Spec{Daily: "09:00:00"},
			want: time.Date(2026, time.January, 1, 9, 0, 0, 0, newYork),
		},
		{
			name: "cron",
			spec: Spec{Cron: "0 30 7 * * *"},
			want: time.Date(2026, time.January, 1, 7, 30, 0, 0, newYork),
		},
		{
			name: "at",
			spec: Spec{AtDate: "2026-01-02", AtTime: "08:00"},
			want: time.Date(2026, time.January, 2, 8, 0, 0, 0, newYork),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := tt.spec.Policy(newYork)
			require.NoError(t, err)
			got := p.First(start)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSpec_Merge(t *testing.T) {
	t.Parallel()

	file := Spec{Daily: "08:00"}

	assert.Equal(t, file, Spec{}.Merge(file))
	assert.Equal(t, Spec{Every: "30"}, Spec{Every: "30"}.Merge(file))
	assert.True(t, Spec{AtTime: "09:00"}.IsZero())
}
