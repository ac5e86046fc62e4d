package cash

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	amino "github.com/tendermint/go-amino"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use timedescrow.Address, so address in hex, not base64
type GenesisAccount struct {
	Address timedescrow.Address `json:"address"`
	Coins   uint64              `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	cdc *amino.Codec
}

var _ timedescrow.Initializer = Initializer{}

// NewInitializer returns an initializer storing wallets with given codec.
func NewInitializer(cdc *amino.Codec) Initializer {
	return Initializer{cdc: cdc}
}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (i Initializer) FromGenesis(opts timedescrow.Options, kv timedescrow.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController(NewBucket(i.cdc))
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Coins); err != nil {
			return err
		}
	}
	return nil
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(cdc *amino.Codec, qr timedescrow.QueryRouter) {
	NewBucket(cdc).Register("wallets", qr)
}
