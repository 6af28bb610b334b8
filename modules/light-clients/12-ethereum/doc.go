/*
Package ethereum implements the 12-ethereum light client. It follows the
beacon chain through sync committee light client updates: a finalized beacon
header is accepted once a supermajority of the sync committee signed an
attested header whose state commits to it. The execution payload header of
the finalized block supplies the execution state root, and IBC commitments
are proven with Merkle-Patricia account and storage proofs against it.

Sync committee roots are kept as client data keyed by sync committee period.
They are written at creation and whenever an update proves the committee of
the following period.
*/
package ethereum
