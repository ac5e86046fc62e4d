/*
Package escrow implements a timed escrow between a depositor and a
beneficiary, with an optional arbiter.

An escrow is created with initialize, receives value exactly once with fund
and ends in one of three terminal states. Release pays the beneficiary once
the release time is reached and can be triggered by anyone. Refund returns
the value to the depositor, either on request of the arbiter at any time or
on request of the depositor once the escrow expired. Cancel withdraws an
escrow that was never funded.

Funds are held by a custody account that only this extension controls. Its
address is derived from the escrow ID.
*/
package escrow
