// Package facade holds the per-domain observable state between the UI and
// the API client. Each facade owns a state snapshot guarded by a mutex,
// mutates it around client calls, and publishes every new snapshot on its
// event-bus topic. State() returns copies; subscribers receive the snapshot
// published, never a live reference.
//
// User-facing error strings are kept in Portuguese: they surface directly
// in the UI of a Brazilian product.
package facade

// Event-bus topics carrying facade state snapshots.
const (
	TopicAuth   = "auth:state"
	TopicPets   = "pets:state"
	TopicTutors = "tutors:state"
	TopicHealth = "health:state"
)

// Pagination is the page position of the last listing loaded.
type Pagination struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
}
