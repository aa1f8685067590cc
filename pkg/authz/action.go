package authz

// Action identifies the kind of mutation a caller is requesting. It is used
// by outer layers to pick a rule function; the rules themselves are one
// strongly-typed function per (resource, action) pair.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)
