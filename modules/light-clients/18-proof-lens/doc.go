/*
Package prooflens implements the 18-proof-lens light client. A proof-lens
client owns no verification logic: it delegates membership checks to a target
client of the same registry at the same height. Its headers only record which
heights of the target it accepts, so a connection can be bound to a subset of
the target's consensus states.
*/
package prooflens
