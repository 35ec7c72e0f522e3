package model

// Event is a calendar entry, optionally tied to a task. The store does not
// require Start to precede End.
type Event struct {
	ID     int64     `json:"id" db:"id" yaml:"id"`
	Title  string    `json:"title" db:"title" yaml:"title"`
	Start  Timestamp `json:"start" db:"starts_at" yaml:"start"`
	End    Timestamp `json:"end" db:"ends_at" yaml:"end"`
	AllDay bool      `json:"allDay" db:"all_day" yaml:"allDay"`
	TaskID *int64    `json:"task_id" db:"task_id" yaml:"task_id,omitempty"`
}

// EventInput carries the fields accepted when creating an event.
type EventInput struct {
	Title  string
	Start  Timestamp
	End    Timestamp
	AllDay bool
	TaskID *int64
}

// Validate checks the required fields.
func (in EventInput) Validate() error {
	if err := ValidateEventTitle(in.Title); err != nil {
		return err
	}
	if in.Start.IsZero() {
		return &ValidationError{Field: "start", Message: "start is required"}
	}
	if in.End.IsZero() {
		return &ValidationError{Field: "end", Message: "end is required"}
	}
	return nil
}

// EventPatch holds a partial update. Nil fields are left untouched, so a
// linked task cannot be unlinked through a patch.
type EventPatch struct {
	Title  *string
	Start  *Timestamp
	End    *Timestamp
	AllDay *bool
	TaskID *int64
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Start == nil && p.End == nil &&
		p.AllDay == nil && p.TaskID == nil
}

// Validate checks the fields that are present.
func (p EventPatch) Validate() error {
	if p.Title != nil {
		return ValidateEventTitle(*p.Title)
	}
	return nil
}
