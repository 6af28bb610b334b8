/*
Package berachain implements the 16-berachain light client.

Berachain runs its consensus on CometBFT and stores the hash tree root of the
latest Deneb execution payload header in its application state. The client
therefore composes over a 07-tendermint client of the chain: a header carries
an execution payload header and an ICS23 proof, checked through the host
against the tendermint client, that its root is committed at an L1 height.

Heights are execution block numbers with revision number zero. Commitments
are proven against the execution state root with Merkle-Patricia account and
storage proofs of the ibc handler contract.

Misbehaviour is not handled here. It is submitted to the tendermint client,
whose status the berachain client inherits.
*/
package berachain
