/*
Package statelens implements the 17-state-lens light client. It tracks an L2
through two hops: the L1 client registered in the same registry, and the
client of the L2 that runs on the L1. A header carries the raw consensus state
the L1 stores for the L2 at some height, proven through the L1 client. The L2
state root and timestamp are read from that encoding at fixed offsets, so any
L2 consensus state layout can be tracked without the L1 client knowing it.

Membership proofs against the L2 state root are ICS23 proofs or Ethereum
account and storage proofs depending on the client state's ProofType.
*/
package statelens
