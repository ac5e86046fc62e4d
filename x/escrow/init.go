package escrow

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/orm"
	amino "github.com/tendermint/go-amino"
)

const (
	optKey = "escrow"

	configBucketName = "esc_conf"
)

var configKey = []byte("params")

// Config holds the escrow parameters set at genesis.
type Config struct {
	// MinAmount is the lowest amount an escrow can be funded with. Zero
	// means any positive amount is accepted.
	MinAmount uint64 `json:"min_amount"`
}

var _ orm.Model = (*Config)(nil)

// Validate always passes, every minimum is a valid one.
func (*Config) Validate() error {
	return nil
}

// ConfigBucket stores the single escrow configuration entry.
type ConfigBucket struct {
	orm.Bucket
}

// NewConfigBucket returns the configuration bucket.
func NewConfigBucket(cdc *amino.Codec) ConfigBucket {
	b := orm.NewBucket(configBucketName, cdc, func() orm.Model { return &Config{} })
	return ConfigBucket{Bucket: b}
}

// Load returns the stored configuration, or the zero configuration if none
// was set at genesis.
func (b ConfigBucket) Load(db timedescrow.ReadOnlyKVStore) (*Config, error) {
	var c Config
	switch err := b.One(db, configKey, &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return &Config{}, nil
	default:
		return nil, err
	}
}

// Initializer loads the escrow configuration from the genesis file.
type Initializer struct {
	cdc *amino.Codec
}

var _ timedescrow.Initializer = Initializer{}

// NewInitializer returns an initializer storing the configuration with given
// codec.
func NewInitializer(cdc *amino.Codec) Initializer {
	return Initializer{cdc: cdc}
}

// FromGenesis reads the "escrow" section. A missing section leaves the
// defaults in place.
func (i Initializer) FromGenesis(opts timedescrow.Options, kv timedescrow.KVStore) error {
	var conf *Config
	if err := opts.ReadOptions(optKey, &conf); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if conf == nil {
		return nil
	}
	return NewConfigBucket(i.cdc).Put(kv, configKey, conf)
}

// RegisterQuery will register the escrow bucket as "/escrows"
func RegisterQuery(cdc *amino.Codec, qr timedescrow.QueryRouter) {
	NewBucket(cdc).Register("escrows", qr)
}
