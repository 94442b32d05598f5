package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/devlens/internal/config"
	"github.com/templui/devlens/internal/markdown"
)

type fakeMailer struct {
	calls []*Email
	err   error
}

func (m *fakeMailer) Send(_ context.Context, email *Email) error {
	m.calls = append(m.calls, email)
	return m.err
}

func newTestLeadService(mailer Mailer, variant string) *LeadService {
	s := NewLeadService(mailer, markdown.NewParser(), LeadConfig{
		From:      "DevLens <noreply@devlens.test>",
		Recipient: "sales@devlens.test",
		Variant:   variant,
		AppName:   "DevLens",
	})
	s.now = func() time.Time { return time.Date(2026, 3, 4, 10, 30, 15, 500, time.UTC) }
	s.newID = func() string { return "ref-123" }
	return s
}

func TestLeadSubmitBookDemoDefaults(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestLeadService(mailer, config.LeadTemplateBranded)

	lead, err := s.Submit(context.Background(), BookDemoForm, map[string]any{
		"name":  "Jane Doe",
		"phone": "555-1234",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"name":    "Jane Doe",
		"phone":   "555-1234",
		"message": "",
		"source":  "website-demo-request",
	}, lead.Fields)
	require.Equal(t, "ref-123", lead.Reference)
	require.Equal(t, time.Date(2026, 3, 4, 10, 30, 15, 0, time.UTC), lead.SubmittedAt)

	require.Len(t, mailer.calls, 1)
	email := mailer.calls[0]
	require.Contains(t, email.Subject, "Jane Doe")
	require.Equal(t, "New Demo Booking Request: Jane Doe", email.Subject)
	require.Equal(t, []string{"sales@devlens.test"}, email.To)
	require.Equal(t, "DevLens <noreply@devlens.test>", email.From)
	require.Empty(t, email.ReplyTo)
	require.Contains(t, email.Text, "Name: Jane Doe")
	require.Contains(t, email.Text, "Source: website-demo-request")
	require.Contains(t, email.Text, "Form: book-demo-form")
	require.Equal(t, 1, strings.Count(email.Text, "Source:"))
	require.Contains(t, email.HTML, "Form: book-demo-form")
	require.Contains(t, email.Text, "Priority: Normal")
	require.Contains(t, email.Text, "Reference: ref-123")
	require.Contains(t, email.HTML, "<table>")
	require.Contains(t, email.HTML, "Jane Doe")
	require.Contains(t, email.HTML, "<!DOCTYPE html>")
}

func TestLeadSubmitMissingFields(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestLeadService(mailer, config.LeadTemplateBranded)

	_, err := s.Submit(context.Background(), SchoolDemoForm, map[string]any{
		"name":       "  ",
		"schoolName": "Springfield Elementary",
		"schoolType": 42.0,
	})
	require.ErrorIs(t, err, ErrMissingFields)

	var missingErr *MissingFieldsError
	require.True(t, errors.As(err, &missingErr))
	require.Equal(t, []string{"name", "phone"}, missingErr.Fields)
	require.Equal(t, "Missing required fields: name, phone", err.Error())
	require.Empty(t, mailer.calls)
}

func TestLeadSubmitNonStringValuesCountAsMissing(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestLeadService(mailer, config.LeadTemplateBranded)

	_, err := s.Submit(context.Background(), BookDemoForm, map[string]any{
		"name":  []any{"Jane"},
		"phone": nil,
	})
	require.ErrorIs(t, err, ErrMissingFields)
	require.Empty(t, mailer.calls)
}

func TestLeadSubmitSchoolDemo(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestLeadService(mailer, config.LeadTemplateMinimal)

	lead, err := s.Submit(context.Background(), SchoolDemoForm, map[string]any{
		"name":       " Edna Krabappel ",
		"phone":      "555-0100",
		"schoolName": "Springfield Elementary",
		"schoolType": "public primary",
		"message":    "Line one\n<script>alert(1)</script>",
		"email":      "edna@springfield.test",
	})
	require.NoError(t, err)
	require.Equal(t, "Edna Krabappel", lead.Field("name"))

	require.Len(t, mailer.calls, 1)
	email := mailer.calls[0]
	require.Equal(t, "New School Demo Request: Edna Krabappel - Springfield Elementary", email.Subject)
	require.Equal(t, "edna@springfield.test", email.ReplyTo)
	require.Contains(t, email.Text, "School Type: Public Primary")
	require.Contains(t, email.Text, "Priority: High")
	require.Contains(t, email.HTML, "Public Primary")
	require.Contains(t, email.HTML, "<blockquote>")
	require.NotContains(t, email.HTML, "<script>")
	require.False(t, strings.HasPrefix(email.HTML, "<!DOCTYPE html>"))
}

func TestLeadSubmitInvalidReplyTo(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestLeadService(mailer, config.LeadTemplateBranded)

	_, err := s.Submit(context.Background(), BookDemoForm, map[string]any{
		"name":  "Jane Doe",
		"phone": "555-1234",
		"email": "not-an-address",
	})
	require.NoError(t, err)
	require.Len(t, mailer.calls, 1)
	require.Empty(t, mailer.calls[0].ReplyTo)
}

func TestLeadSubmitMailerFailure(t *testing.T) {
	sendErr := errors.New("provider down")
	mailer := &fakeMailer{err: sendErr}
	s := newTestLeadService(mailer, config.LeadTemplateBranded)

	_, err := s.Submit(context.Background(), BookDemoForm, map[string]any{
		"name":  "Jane Doe",
		"phone": "555-1234",
	})
	require.ErrorIs(t, err, ErrEmailDeliveryFailed)
	require.ErrorIs(t, err, sendErr)
	require.Len(t, mailer.calls, 1)
}

func TestSchoolDemoRequiredKeys(t *testing.T) {
	require.Equal(t, []string{"name", "phone", "schoolName", "schoolType"}, SchoolDemoForm.RequiredKeys())
	require.Equal(t, []string{"name", "phone"}, BookDemoForm.RequiredKeys())
}

func TestLeadSubmitKeepsNumericDigits(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestLeadService(mailer, config.LeadTemplateBranded)

	lead, err := s.Submit(context.Background(), BookDemoForm, map[string]any{
		"name":    "Jane Doe",
		"phone":   json.Number("5551234567"),
		"message": 1234567.0,
	})
	require.NoError(t, err)
	require.Equal(t, "5551234567", lead.Field("phone"))
	require.Equal(t, "1234567", lead.Field("message"))

	require.Len(t, mailer.calls, 1)
	require.Contains(t, mailer.calls[0].Text, "Phone: 5551234567")
	require.NotContains(t, mailer.calls[0].Text, "e+")
}

func TestLeadSubmitReplyToUsesBareAddress(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestLeadService(mailer, config.LeadTemplateBranded)

	_, err := s.Submit(context.Background(), BookDemoForm, map[string]any{
		"name":  "Jane Doe",
		"phone": "555-1234",
		"email": "Jane Doe <jane@example.com>",
	})
	require.NoError(t, err)
	require.Len(t, mailer.calls, 1)
	require.Equal(t, "jane@example.com", mailer.calls[0].ReplyTo)
}
