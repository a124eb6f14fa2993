package logging

// Standardized structured logging keys.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldItemIndex = "item_index"
	FieldItemCount = "item_count"
	FieldInput     = "input"
	FieldOutput    = "output"
	FieldFormat    = "format"
	FieldModel     = "model"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
)
