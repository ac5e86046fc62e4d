package escrowtest

import "github.com/iov-one/timedescrow"

// Tx carries a single message. Err, if set, is returned by GetMsg.
type Tx struct {
	Msg timedescrow.Msg
	Err error
}

var _ timedescrow.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (timedescrow.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message with a configurable path.
type Msg struct {
	RoutePath string
	Err       error
}

var _ timedescrow.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
