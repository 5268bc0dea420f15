package logging

const (
	// FieldComponent names the package emitting a record.
	FieldComponent = "component"
	// FieldEventType is a stable machine-readable name for the event.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldPath is the namespace path an event concerns.
	FieldPath = "path"
	// FieldCommand is the CLI subcommand being executed.
	FieldCommand = "command"
)
