package entities

// ChangeOp indicates what a recorded mutation did.
type ChangeOp string

const (
	ChangeAdd       ChangeOp = "add"
	ChangeRemoveKey ChangeOp = "remove_key"
	ChangeRemoveTag ChangeOp = "remove_tag"
)

// Change is one mutation applied to the registry through the builder.
// Key is unset for ChangeRemoveTag.
type Change struct {
	Op   ChangeOp `json:"op"`
	Kind Kind     `json:"kind"`
	Tag  string   `json:"tag"`
	Key  Key      `json:"key,omitempty"`
}
