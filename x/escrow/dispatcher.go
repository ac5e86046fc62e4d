package escrow

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/x"
	"github.com/iov-one/timedescrow/x/cash"
	amino "github.com/tendermint/go-amino"
)

// Dispatcher is the single entry point of the escrow extension. It decodes
// the instruction carried by a transaction and passes it to the handler of
// its kind. Instructions of any other kind are rejected.
type Dispatcher struct {
	initialize InitializeHandler
	fund       FundHandler
	release    ReleaseHandler
	refund     RefundHandler
	cancel     CancelHandler
}

var _ timedescrow.Handler = Dispatcher{}

// NewDispatcher returns a dispatcher with all escrow handlers.
func NewDispatcher(cdc *amino.Codec, auth x.Authenticator, bank cash.Controller) Dispatcher {
	b := newBase(cdc, auth, bank)
	return Dispatcher{
		initialize: InitializeHandler{b},
		fund:       FundHandler{b},
		release:    ReleaseHandler{b},
		refund:     RefundHandler{b},
		cancel:     CancelHandler{b},
	}
}

// Check routes the transaction to the handler of its instruction.
func (d Dispatcher) Check(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.CheckResult, error) {
	h, err := d.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

// Deliver routes the transaction to the handler of its instruction.
func (d Dispatcher) Deliver(ctx timedescrow.Context, db timedescrow.KVStore, tx timedescrow.Tx) (*timedescrow.DeliverResult, error) {
	h, err := d.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func (d Dispatcher) handler(tx timedescrow.Tx) (timedescrow.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get transaction message")
	}
	switch msg.(type) {
	case *InitializeMsg:
		return d.initialize, nil
	case *FundMsg:
		return d.fund, nil
	case *ReleaseMsg:
		return d.release, nil
	case *RefundMsg:
		return d.refund, nil
	case *CancelMsg:
		return d.cancel, nil
	case nil:
		return nil, errors.Wrap(errors.ErrInput, "missing instruction")
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown instruction %T", msg)
	}
}
