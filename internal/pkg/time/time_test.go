package time_test

import (
	"encoding/json"
	"testing"
	"time"

	timex "github.com/ferdiebergado/credkit/internal/pkg/time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"Hours", `"24h"`, 24 * time.Hour, false},
		{"Mixed units", `"1m30s"`, 90 * time.Second, false},
		{"Not a duration", `"soon"`, 0, true},
		{"Not a string", `30`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d timex.Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("json.Unmarshal(%q) error = %v, wantErr: %v", tt.input, err, tt.wantErr)
			}

			if got := d.Duration; got != tt.want {
				t.Errorf("d.Duration = %v, want: %v", got, tt.want)
			}
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(timex.Duration{Duration: 15 * time.Minute})
	if err != nil {
		t.Fatal(err)
	}

	got, want := string(b), `"15m0s"`
	if got != want {
		t.Errorf("json.Marshal() = %s, want: %s", got, want)
	}
}
