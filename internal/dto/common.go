package dto

import (
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// MessageResponse is the body of operations that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

// ParseOptionalDate parses a YYYY-MM-DD pointer; nil and "" yield nil.
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
