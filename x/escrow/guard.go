package escrow

import (
	"github.com/iov-one/timedescrow"
	"github.com/iov-one/timedescrow/errors"
	"github.com/iov-one/timedescrow/x"
)

// Action is the kind of instruction the Guard authorizes.
type Action int

const (
	ActionInitialize Action = iota + 1
	ActionFund
	ActionRelease
	ActionRefund
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionInitialize:
		return "initialize"
	case ActionFund:
		return "fund"
	case ActionRelease:
		return "release"
	case ActionRefund:
		return "refund"
	case ActionCancel:
		return "cancel"
	}
	return "unknown"
}

// Role is the capacity in which a caller was authorized.
type Role int

const (
	RoleAnyone Role = iota
	RoleDepositor
	RoleArbiter
)

// Guard decides whether the signers of the current transaction may perform
// an action on an escrow. It only looks at roles, the state and the time
// gate are checked by the handlers.
type Guard struct {
	auth x.Authenticator
}

// NewGuard returns a guard that reads signers with given authenticator.
func NewGuard(auth x.Authenticator) Guard {
	return Guard{auth: auth}
}

// Authorize returns the role the caller acts in, or ErrUnauthorized.
//
// A refund is allowed to the arbiter and, once the escrow expired, to the
// depositor. When the caller is both, the arbiter role is returned so that
// no expiry is required. A depositor of an escrow without expiry can never
// refund.
func (g Guard) Authorize(ctx timedescrow.Context, e *Escrow, action Action) (Role, error) {
	switch action {
	case ActionInitialize, ActionFund, ActionCancel:
		if !g.auth.HasAddress(ctx, e.Depositor) {
			return 0, errors.Wrapf(errors.ErrUnauthorized, "%s requires the depositor signature", action)
		}
		return RoleDepositor, nil
	case ActionRelease:
		return RoleAnyone, nil
	case ActionRefund:
		if len(e.Arbiter) != 0 && g.auth.HasAddress(ctx, e.Arbiter) {
			return RoleArbiter, nil
		}
		if !g.auth.HasAddress(ctx, e.Depositor) {
			return 0, errors.Wrap(errors.ErrUnauthorized, "refund requires the arbiter or depositor signature")
		}
		if e.ExpiryTime == 0 {
			return 0, errors.Wrap(errors.ErrUnauthorized, "escrow without expiry can be refunded by the arbiter only")
		}
		return RoleDepositor, nil
	default:
		return 0, errors.Wrapf(errors.ErrHuman, "unknown action %d", action)
	}
}
