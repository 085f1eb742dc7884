package services

// DocumentStore persists documents. Every operation is scoped by owner: a
// document that belongs to someone else behaves exactly like a missing one
// and yields ErrNotFound.
type DocumentStore interface {
	// List returns the owner's documents of kind, newest first. An empty kind
	// lists every kind.
	List(ownerID string, kind Kind) ([]Document, error)
	// Get returns one document with its items in their saved order.
	Get(ownerID, id string) (*Document, error)
	// Save inserts the document when its ID is empty, otherwise updates it.
	// The item list is replaced wholesale and atomically.
	Save(doc *Document) (string, error)
	// Delete removes the document and all of its items.
	Delete(ownerID, id string) error
}
