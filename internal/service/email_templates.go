package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/templui/devlens/internal/config"
	"github.com/templui/devlens/internal/markdown"
	"github.com/templui/devlens/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const leadTimeLayout = "Jan 2, 2006 at 15:04 MST"

var brandedLayout = template.Must(template.New("lead").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;background:#f4f4f5;font-family:-apple-system,Segoe UI,Helvetica,Arial,sans-serif;color:#18181b;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:8px;overflow:hidden;border:1px solid #e4e4e7;">
    <div style="background:#2563eb;color:#ffffff;padding:20px 24px;">
      <div style="font-size:12px;text-transform:uppercase;letter-spacing:0.08em;opacity:0.85;">{{.AppName}} &middot; {{.Priority}} priority</div>
      <div style="font-size:20px;font-weight:600;margin-top:4px;">{{.Title}}</div>
    </div>
    <div style="padding:24px;font-size:14px;line-height:1.6;">
      {{.Body}}
    </div>
    <div style="padding:12px 24px;background:#fafafa;color:#71717a;font-size:12px;border-top:1px solid #e4e4e7;">
      Reference {{.Reference}}
    </div>
  </div>
</body>
</html>`))

type brandedData struct {
	AppName   string
	Title     string
	Priority  string
	Reference string
	Body      template.HTML
}

var titleCaser = cases.Title(language.English)

func displayValue(field LeadField, value string) string {
	if field.TitleCase {
		return titleCaser.String(value)
	}
	return value
}

func leadSubject(form LeadForm, lead *model.Lead) string {
	subject := fmt.Sprintf("New %s: %s", form.Title, lead.Field("name"))
	if form.SubjectDetail != "" {
		if detail := lead.Field(form.SubjectDetail); detail != "" {
			subject += " - " + detail
		}
	}
	return subject
}

func leadTextBody(form LeadForm, lead *model.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s\n\n", form.Title)

	for _, field := range form.Fields {
		value := lead.Field(field.Key)
		if value == "" {
			continue
		}
		if field.Multiline {
			fmt.Fprintf(&b, "%s:\n%s\n", field.Label, value)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", field.Label, displayValue(field, value))
	}

	fmt.Fprintf(&b, "\nSubmitted: %s\n", lead.SubmittedAt.Format(leadTimeLayout))
	fmt.Fprintf(&b, "Priority: %s\n", form.Priority)
	fmt.Fprintf(&b, "Form: %s\n", form.Source)
	fmt.Fprintf(&b, "Reference: %s\n", lead.Reference)

	return b.String()
}

func leadMarkdownBody(form LeadForm, lead *model.Lead) string {
	var b strings.Builder
	b.WriteString("| Field | Value |\n|---|---|\n")

	var quoted []LeadField
	for _, field := range form.Fields {
		value := lead.Field(field.Key)
		if value == "" {
			continue
		}
		if field.Multiline {
			quoted = append(quoted, field)
			continue
		}
		fmt.Fprintf(&b, "| **%s** | %s |\n", field.Label, markdown.Escape(displayValue(field, value)))
	}

	for _, field := range quoted {
		fmt.Fprintf(&b, "\n**%s**\n\n%s\n", field.Label, markdown.Quote(lead.Field(field.Key)))
	}

	fmt.Fprintf(&b, "\n*Submitted %s · Priority: %s · Form: %s*\n",
		markdown.Escape(lead.SubmittedAt.Format(leadTimeLayout)),
		markdown.Escape(form.Priority),
		markdown.Escape(form.Source),
	)

	return b.String()
}

// leadEmailTemplate builds the subject, HTML body and plain-text body for a lead notification.
func leadEmailTemplate(md *markdown.Parser, form LeadForm, lead *model.Lead, variant, appName string) (string, string, string, error) {
	subject := leadSubject(form, lead)
	text := leadTextBody(form, lead)

	fragment, err := md.Parse([]byte(leadMarkdownBody(form, lead)))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to render lead markdown: %w", err)
	}

	if variant == config.LeadTemplateMinimal {
		html := fmt.Sprintf("<h2>New %s</h2>\n%s<p>Reference %s</p>\n",
			template.HTMLEscapeString(form.Title), fragment, template.HTMLEscapeString(lead.Reference))
		return subject, html, text, nil
	}

	var buf bytes.Buffer
	err = brandedLayout.Execute(&buf, brandedData{
		AppName:   appName,
		Title:     form.Title,
		Priority:  form.Priority,
		Reference: lead.Reference,
		Body:      template.HTML(fragment),
	})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to render lead layout: %w", err)
	}

	return subject, buf.String(), text, nil
}

// submittedAt is shared by the response payload and the email body
func submittedAt(now time.Time) time.Time {
	return now.UTC().Truncate(time.Second)
}
