package timedescrow

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/timedescrow/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"epoch as seconds": {
			raw:      "0",
			wantTime: 0,
		},
		"epoch in another zone": {
			raw:      `"1970-01-01T02:00:00+02:00"`,
			wantTime: 0,
		},
		"release deadline as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"release deadline as seconds": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"before epoch": {
			raw:     "-1",
			wantErr: errors.ErrInput,
		},
		"string before epoch": {
			raw:     `"1969-12-31T23:59:00Z"`,
			wantErr: errors.ErrInput,
		},
		"not a time": {
			raw:     `"tomorrow"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			if err := json.Unmarshal([]byte(tc.raw), &got); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != tc.wantTime {
				t.Fatalf("want %d, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeString(t *testing.T) {
	if got := UnixTime(100).String(); got != "1970-01-01T00:01:40Z" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := AsUnixTime(time.Unix(100, 999)); got != 100 {
		t.Fatalf("want 100, got %d", got)
	}
}

func TestBlockNowRequiresBlockTime(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("missing block time must panic")
		}
	}()
	BlockNow(context.Background())
}
