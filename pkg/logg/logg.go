package logg

// Field keys shared by every zap logger in the inspector.
const (
	Layer     = "layer"
	Operation = "op"
	Selector  = "selector"
	Kind      = "kind"
	URL       = "url"
	SessionID = "session_id"
	Event     = "event"
	Tag       = "tag"
)
