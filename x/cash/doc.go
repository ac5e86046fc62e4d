/*
Package cash keeps the balances of all accounts, including the custody
accounts of escrows. There is a single currency and balances are unsigned,
so every movement is checked for insufficient funds and overflow.
*/
package cash
