package domain

// Domain contains core models shared across the harvester.

// ChangeKind classifies how an instrument differs from the last harvested
// snapshot.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeUpdated  ChangeKind = "updated"
	ChangeDelisted ChangeKind = "delisted"
)
