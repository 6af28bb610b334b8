/*
Package aptos implements the 13-aptos light client and the ledger types it
shares with the movement client.

A header carries a LedgerInfo signed by the validators of its epoch. Once a
quorum of voting power signed it, the transaction accumulator root it commits
to is trusted, and a TransactionInfo proven at the committed version supplies
the state checkpoint root that commitments are proven against with sparse
Merkle proofs.

Validator set hashes are kept as client data keyed by epoch. The hash of the
first epoch is written at creation and epoch changes add the next one.
*/
package aptos
