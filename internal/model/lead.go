package model

import "time"

const (
	LeadKindSchoolDemo = "school_demo"
	LeadKindBookDemo   = "book_demo"
)

// Lead is a validated form submission on its way to the sales mailbox.
// Fields holds the trimmed values keyed by their JSON name.
type Lead struct {
	Kind        string
	Reference   string
	Fields      map[string]string
	SubmittedAt time.Time
}

func (l *Lead) Field(key string) string {
	return l.Fields[key]
}
