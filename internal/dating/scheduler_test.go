package dating

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{name: "later today", now: day.Add(2 * time.Hour), hour: 9, want: day.Add(9 * time.Hour)},
		{name: "already passed", now: day.Add(10 * time.Hour), hour: 9, want: day.Add(33 * time.Hour)},
		{name: "exactly now", now: day.Add(9 * time.Hour), hour: 9, want: day.Add(33 * time.Hour)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := nextRun(tt.now, tt.hour, 0); !got.Equal(tt.want) {
				t.Errorf("nextRun() = %v, want %v", got, tt.want)
			}
		})
	}
}
