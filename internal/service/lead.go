package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/devlens/internal/markdown"
	"github.com/templui/devlens/internal/model"
	"github.com/templui/devlens/internal/validation"
)

var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrEmailDeliveryFailed = errors.New("failed to deliver lead email")
)

// MissingFieldsError lists the required keys that were absent or blank
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

type LeadService struct {
	mailer    Mailer
	md        *markdown.Parser
	from      string
	recipient string
	variant   string
	appName   string
	now       func() time.Time
	newID     func() string
}

type LeadConfig struct {
	From      string
	Recipient string
	Variant   string
	AppName   string
}

func NewLeadService(mailer Mailer, md *markdown.Parser, cfg LeadConfig) *LeadService {
	return &LeadService{
		mailer:    mailer,
		md:        md,
		from:      cfg.From,
		recipient: cfg.Recipient,
		variant:   cfg.Variant,
		appName:   cfg.AppName,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Submit validates a decoded JSON body against form and mails the notification.
// The mailer is only called once every required field is present.
func (s *LeadService) Submit(ctx context.Context, form LeadForm, input map[string]any) (*model.Lead, error) {
	fields := make(map[string]string, len(form.Fields))
	var missing []string

	for _, field := range form.Fields {
		value := stringValue(input[field.Key])
		if value == "" {
			if field.Required {
				missing = append(missing, field.Key)
				continue
			}
			value = field.Default
		}
		if field.Key == emailField.Key && value == "" {
			continue
		}
		fields[field.Key] = value
	}

	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	lead := &model.Lead{
		Kind:        form.Kind,
		Reference:   s.newID(),
		Fields:      fields,
		SubmittedAt: submittedAt(s.now()),
	}

	subject, html, text, err := leadEmailTemplate(s.md, form, lead, s.variant, s.appName)
	if err != nil {
		return nil, err
	}

	email := &Email{
		From:    s.from,
		To:      []string{s.recipient},
		Subject: subject,
		HTML:    html,
		Text:    text,
	}

	if raw := lead.Field(emailField.Key); raw != "" {
		if replyTo, err := validation.ParseEmail(raw); err == nil {
			email.ReplyTo = replyTo
		} else {
			slog.Warn("ignoring invalid reply-to address", "error", err, "kind", form.Kind, "reference", lead.Reference)
		}
	}

	err = s.mailer.Send(ctx, email)
	if err != nil {
		slog.Error("failed to send lead email", "error", err, "kind", form.Kind, "reference", lead.Reference)
		return nil, fmt.Errorf("%w: %w", ErrEmailDeliveryFailed, err)
	}

	slog.Info("lead submitted", "kind", form.Kind, "reference", lead.Reference)
	return lead, nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
