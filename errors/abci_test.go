package errors

import (
	"io"
	"strings"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"registered error": {
			err:      ErrUnauthorized,
			wantCode: 2,
			wantLog:  "unauthorized",
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrState, "escrow released"), "refund"),
			wantCode: 10,
			wantLog:  "refund: escrow released: invalid state",
		},
		"success": {
			err:      nil,
			wantCode: SuccessABCICode,
		},
		"typed nil": {
			err:      (*Error)(nil),
			wantCode: SuccessABCICode,
		},
		"unregistered error is redacted": {
			err:      Wrap(io.EOF, "cannot read"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"unregistered error in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantCode: 1,
			wantLog:  "EOF",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIInfoDebugStacktrace(t *testing.T) {
	_, log := ABCIInfo(Wrap(ErrState, "escrow released"), true)
	if !strings.HasPrefix(log, "escrow released: invalid state") {
		t.Fatalf("unexpected log: %q", log)
	}
	if !strings.Contains(log, "abci_test.go") {
		t.Fatalf("debug log must contain a stacktrace: %q", log)
	}
}
