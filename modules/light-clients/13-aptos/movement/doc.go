/*
Package movement implements the 13-movement light client for Aptos-style
chains that settle on an L1. Instead of a validator quorum certificate, a
header proves that the transaction accumulator root of its ledger info was
committed on the L1 by verifying membership through the L1 client registered
in the same registry. State proofs are then checked exactly like the aptos
client does.
*/
package movement
