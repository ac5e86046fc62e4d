package app

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/orm"
)

// ResultSet is one side of a query response: the keys or the values of all
// matched records, in the same order.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

func (r *ResultSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return errors.Wrap(wrapCodec(cdc.UnmarshalBinaryBare(raw, r)), "result set")
}

// splitResults returns the key and the value side of models.
func splitResults(models []timedescrow.Model) (keys, values *ResultSet) {
	keys = &ResultSet{Results: make([][]byte, len(models))}
	values = &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		keys.Results[i], values.Results[i] = m.Key, m.Value
	}
	return keys, values
}

// UnmarshalOneResult decodes the first record of the value side of a query
// response into o. An empty response is ErrNotFound.
func UnmarshalOneResult(raw []byte, o orm.Model) error {
	var res ResultSet
	if err := res.Unmarshal(raw); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty result")
	}
	return wrapCodec(cdc.UnmarshalBinaryBare(res.Results[0], o))
}

// wrapCodec turns a codec failure into ErrInput.
func wrapCodec(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrInput, err.Error())
}
