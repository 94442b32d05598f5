package service

import "github.com/templui/devlens/internal/model"

// LeadField declares one input of a lead form, in display order
type LeadField struct {
	Key       string // JSON key in the request body
	Label     string
	Required  bool
	Default   string // Used when an optional field is missing or blank
	TitleCase bool   // Display value title-cased in the email
	Multiline bool   // Rendered as a quoted block instead of a table row
}

// LeadForm describes a lead-generation form: which fields it accepts, which
// are required, and how its notification email is labelled.
type LeadForm struct {
	Kind           string
	Title          string // e.g. "School Demo Request"
	SubjectDetail  string // Optional field key appended to the subject
	Priority       string
	Source         string
	SuccessMessage string
	Fields         []LeadField
}

// emailField is accepted by every form. It only drives the Reply-To header.
var emailField = LeadField{Key: "email", Label: "Email"}

var SchoolDemoForm = LeadForm{
	Kind:           model.LeadKindSchoolDemo,
	Title:          "School Demo Request",
	SubjectDetail:  "schoolName",
	Priority:       "High",
	Source:         "school-demo-form",
	SuccessMessage: "School demo request submitted successfully! We'll contact you soon.",
	Fields: []LeadField{
		{Key: "name", Label: "Name", Required: true},
		{Key: "phone", Label: "Phone", Required: true},
		{Key: "schoolName", Label: "School Name", Required: true},
		{Key: "schoolType", Label: "School Type", Required: true, TitleCase: true},
		{Key: "message", Label: "Message", Multiline: true},
		emailField,
	},
}

var BookDemoForm = LeadForm{
	Kind:           model.LeadKindBookDemo,
	Title:          "Demo Booking Request",
	Priority:       "Normal",
	Source:         "book-demo-form",
	SuccessMessage: "Demo request submitted successfully! We'll be in touch shortly.",
	Fields: []LeadField{
		{Key: "name", Label: "Name", Required: true},
		{Key: "phone", Label: "Phone", Required: true},
		{Key: "message", Label: "Message", Multiline: true},
		{Key: "source", Label: "Source", Default: "website-demo-request"},
		emailField,
	},
}

func (f LeadForm) RequiredKeys() []string {
	var keys []string
	for _, field := range f.Fields {
		if field.Required {
			keys = append(keys, field.Key)
		}
	}
	return keys
}
