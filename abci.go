package timedescrow

import (
	"github.com/iov-one/timedescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is what a successful Check reports back to the mempool.
type CheckResult struct {
	Data []byte
	Log  string
	// GasWanted is the work this instruction will cost on delivery,
	// signature verification included.
	GasWanted int64
}

// DeliverResult is what a successful Deliver reports back to the block.
type DeliverResult struct {
	// Data is the escrow ID the instruction acted on.
	Data []byte
	Log  string
	// Tags are indexed by tendermint, so clients can search for escrow
	// transitions.
	Tags    []common.KVPair
	GasUsed int64
}

// CheckResponse converts the outcome of a Check call. Errors are reported
// with their registered code, unregistered ones are redacted unless debug
// is set.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{Code: code, Log: "cannot check tx: " + log}
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasWanted,
	}
}

// DeliverResponse converts the outcome of a Deliver call, see
// CheckResponse.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: "cannot deliver tx: " + log}
	}
	return abci.ResponseDeliverTx{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}
}
