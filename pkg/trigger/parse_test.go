package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Interval
		wantErr bool
	}{
		{name: "seconds", input: "30", want: Every(30)},
		{name: "padded", input: "  45 ", want: Every(45)},
		{name: "duration minutes", input: "2m", want: Every(120)},
		{name: "duration mixed", input: "1h0m5s", want: Every(3605)},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-10", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
		{name: "sub-second", input: "1500ms", wantErr: true},
		{name: "longest duration", input: "9223372036", want: Every(9223372036)},
		{name: "overflows duration", input: "10000000000", wantErr: true},
		{name: "overflows int64", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseInterval(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInterval)
				require.Zero(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseAt(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, time.October, 20, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		date  string
		clock string
	}{
		{name: "iso date", date: "2026-10-20", clock: "09:30:00"},
		{name: "calendar widget date", date: "10/20/26", clock: "09:30:00"},
		{name: "us long year", date: "10/20/2026", clock: "09:30:00"},
		{name: "dotted european", date: "20.10.2026", clock: "09:30:00"},
		{name: "hour and minute", date: "2026-10-20", clock: "09:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAt(tt.date, tt.clock, time.UTC)
			require.NoError(t, err)
			assert.True(t, want.Equal(got.Time), "got %s", got.Time)
			assert.Equal(t, KindAt, got.Kind())
		})
	}

	t.Run("empty clock means midnight", func(t *testing.T) {
		t.Parallel()

		got, err := ParseAt("2026-10-20", "", time.UTC)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC), got.Time)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		for _, in := range [][2]string{
			{"", "10:00:00"},
			{"2026-02-30", "10:00:00"},
			{"2026-10-20", "25:00:00"},
			{"tomorrow", "10:00:00"},
		} {
			_, err := ParseAt(in[0], in[1], time.UTC)
			require.ErrorIs(t, err, ErrInvalidTime, "date %q time %q", in[0], in[1])
		}
	})
}

func TestDaily(t *testing.T) {
	t.Parallel()

	p, err := Daily("18:05:30")
	require.NoError(t, err)
	assert.Equal(t, "30 5 18 * * *", p.Spec())
	assert.Equal(t, KindRecurring, p.Kind())

	start := time.Date(2026, time.October, 19, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 20, 18, 5, 30, 0, time.UTC), p.First(start))

	_, err = Daily("6pm")
	require.ErrorIs(t, err, ErrInvalidTime)
}

func TestRecurring_In(t *testing.T) {
	t.Parallel()

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	p, err := Daily("09:00")
	require.NoError(t, err)
	p = p.In(newYork)
	assert.Equal(t, newYork, p.Location())

	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2026, time.January, 1, 9, 0, 0, 0, newYork)
	assert.True(t, want.Equal(p.First(start)), "got %s", p.First(start))
	assert.True(t, want.AddDate(0, 0, 1).Equal(p.Next(want)), "got %s", p.Next(want))
}

func TestInterval_Overflow(t *testing.T) {
	t.Parallel()

	_, err := New(Every(int(MaxIntervalSeconds) + 1))
	require.ErrorIs(t, err, ErrInvalidInterval)

	p := Every(int(MaxIntervalSeconds))
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, p.First(start).After(start))
}

func TestParseCron(t *testing.T) {
	t.Parallel()

	p, err := ParseCron("0 */15 * * * *")
	require.NoError(t, err)

	start := time.Date(2026, time.October, 19, 10, 7, 0, 0, time.UTC)
	first := p.First(start)
	assert.Equal(t, time.Date(2026, time.October, 19, 10, 15, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2026, time.October, 19, 10, 30, 0, 0, time.UTC), p.Next(first))

	_, err = ParseCron("@hourly")
	require.NoError(t, err)

	_, err = ParseCron("every tuesday")
	require.ErrorIs(t, err, ErrInvalidCron)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "interval", KindInterval.String())
	assert.Equal(t, "at", KindAt.String())
	assert.Equal(t, "recurring", KindRecurring.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
