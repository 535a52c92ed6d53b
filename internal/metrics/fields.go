package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrState    = "state"
	AttrTrigger  = "trigger"
	AttrOutcome  = "outcome"
)
