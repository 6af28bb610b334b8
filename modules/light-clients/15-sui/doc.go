/*
Package sui implements the 15-sui light client.

A header is a checkpoint summary certified by the committee of its epoch. The
committee signs with BLS in the min-sig scheme and a certificate is accepted
once signers holding at least 6667 of the 10000 units of stake took part.

The client keeps one committee root per epoch as client data. The root is a
binary Merkle root over the authority leaves, so a certificate only carries
its signers and the sibling hashes proving them. The summary that ends an
epoch announces the next committee, which is recorded as a side effect.

Commitments are proven against the object root of a checkpoint with binary
Merkle proofs over leaves sorted by object key. An absent key is proven by
the one or two adjacent leaves that bracket it.
*/
package sui
