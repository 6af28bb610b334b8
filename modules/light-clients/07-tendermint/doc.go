/*
Package tendermint implements the 07-tendermint light client: a concrete
ClientState, ConsensusState, Header and Misbehaviour for chains running
Tendermint BFT consensus, verified with the tendermint light package.
Membership proofs are ICS23 proofs against the AppHash of a trusted header.
*/
package tendermint
