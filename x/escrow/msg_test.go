package escrow

import (
	"strings"
	"testing"

	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/escrowtest"
	amino "github.com/tendermint/go-amino"
)

func TestMsgValidate(t *testing.T) {
	addr := escrowtest.NewCondition().Address()
	id := EscrowID(addr, 7)

	cases := map[string]struct {
		msg     timedescrow.Msg
		wantErr *errors.Error
	}{
		"initialize minimal": {
			msg: &InitializeMsg{Beneficiary: addr, ReleaseTime: 100},
		},
		"initialize full": {
			msg: &InitializeMsg{
				Depositor:   escrowtest.NewCondition().Address(),
				Seed:        3,
				Beneficiary: addr,
				Arbiter:     escrowtest.NewCondition().Address(),
				ReleaseTime: 100,
				ExpiryTime:  200,
				Memo:        "rent",
			},
		},
		"initialize expiry before release": {
			msg:     &InitializeMsg{Beneficiary: addr, ReleaseTime: 100, ExpiryTime: 100},
			wantErr: errors.ErrInput,
		},
		"initialize missing beneficiary": {
			msg:     &InitializeMsg{ReleaseTime: 100},
			wantErr: errors.ErrInput,
		},
		"initialize missing release time": {
			msg:     &InitializeMsg{Beneficiary: addr},
			wantErr: errors.ErrInput,
		},
		"initialize invalid depositor": {
			msg:     &InitializeMsg{Depositor: timedescrow.Address("x"), Beneficiary: addr, ReleaseTime: 100},
			wantErr: errors.ErrInput,
		},
		"initialize memo too long": {
			msg:     &InitializeMsg{Beneficiary: addr, ReleaseTime: 100, Memo: strings.Repeat("m", maxMemoSize+1)},
			wantErr: errors.ErrInput,
		},
		"fund": {
			msg: &FundMsg{EscrowID: id, Amount: 1},
		},
		"fund zero": {
			msg:     &FundMsg{EscrowID: id},
			wantErr: errors.ErrInput,
		},
		"fund bad id": {
			msg:     &FundMsg{EscrowID: []byte("abc"), Amount: 1},
			wantErr: errors.ErrInput,
		},
		"release": {
			msg: &ReleaseMsg{EscrowID: id},
		},
		"release missing id": {
			msg:     &ReleaseMsg{},
			wantErr: errors.ErrInput,
		},
		"refund": {
			msg: &RefundMsg{EscrowID: id},
		},
		"refund missing id": {
			msg:     &RefundMsg{},
			wantErr: errors.ErrInput,
		},
		"cancel": {
			msg: &CancelMsg{EscrowID: id},
		},
		"cancel missing id": {
			msg:     &CancelMsg{},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestMsgCodec(t *testing.T) {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*timedescrow.Msg)(nil), nil)
	RegisterCodec(cdc)

	msgs := []timedescrow.Msg{
		&InitializeMsg{Beneficiary: escrowtest.NewCondition().Address(), ReleaseTime: 100, Seed: 9},
		&FundMsg{EscrowID: EscrowID(escrowtest.NewCondition().Address(), 1), Amount: 5},
		&CancelMsg{EscrowID: EscrowID(escrowtest.NewCondition().Address(), 1)},
	}
	for _, msg := range msgs {
		raw, err := cdc.MarshalBinaryBare(msg)
		if err != nil {
			t.Fatalf("cannot marshal %T: %s", msg, err)
		}
		var got timedescrow.Msg
		if err := cdc.UnmarshalBinaryBare(raw, &got); err != nil {
			t.Fatalf("cannot unmarshal %T: %s", msg, err)
		}
		if got.Path() != msg.Path() {
			t.Fatalf("want %q, got %q", msg.Path(), got.Path())
		}
	}
}
