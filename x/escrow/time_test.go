package escrow

import (
	"testing"

	"github.com/iov-one/timedescrow"
)

func TestTimeGate(t *testing.T) {
	cases := map[string]struct {
		now         timedescrow.UnixTime
		escrow      Escrow
		wantRelease bool
		wantExpire  bool
	}{
		"before release": {
			now:    99,
			escrow: Escrow{ReleaseTime: 100, ExpiryTime: 200},
		},
		"exactly at release": {
			now:         100,
			escrow:      Escrow{ReleaseTime: 100, ExpiryTime: 200},
			wantRelease: true,
		},
		"between release and expiry": {
			now:         150,
			escrow:      Escrow{ReleaseTime: 100, ExpiryTime: 200},
			wantRelease: true,
		},
		"exactly at expiry": {
			now:         200,
			escrow:      Escrow{ReleaseTime: 100, ExpiryTime: 200},
			wantRelease: true,
			wantExpire:  true,
		},
		"no expiry never expires": {
			now:         1 << 40,
			escrow:      Escrow{ReleaseTime: 100},
			wantRelease: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := CanRelease(tc.now, &tc.escrow); got != tc.wantRelease {
				t.Errorf("want release %v, got %v", tc.wantRelease, got)
			}
			if got := CanExpire(tc.now, &tc.escrow); got != tc.wantExpire {
				t.Errorf("want expire %v, got %v", tc.wantExpire, got)
			}
		})
	}
}
