package services

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var defaultPlanFeatures = []string{"Basic Profile", "Limited Applications", "No Boost"}

// ParseSkills reads actors.skills. A JSON array keeps its non-empty items, a
// JSON string becomes a single skill, and any other text is split on commas.
func ParseSkills(raw *string) []string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return []string{}
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(*raw), &parsed); err != nil {
		return splitList(*raw)
	}

	switch v := parsed.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return []string{}
	}
}

// ParseFeatures reads premium_plans.features, stored either as JSON or as a
// comma separated list.
func ParseFeatures(raw string) []string {
	if strings.TrimSpace(raw) == "" || raw == "null" {
		return []string{}
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return splitList(raw)
	}

	switch v := parsed.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			s := fmt.Sprint(item)
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitList(v)
	default:
		return []string{}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AvatarURL returns the generated avatar for a user, seeded by name or id.
func AvatarURL(name string, id int64) string {
	seed := name
	if seed == "" {
		seed = fmt.Sprint(id)
	}
	return "https://api.dicebear.com/7.x/adventurer/svg?seed=" + url.QueryEscape(seed)
}

func formatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// parseDate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func strOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// txFunc runs fn in one database transaction. An error from fn rolls it back.
type txFunc func(db *gorm.DB, fn func(tx *gorm.DB) error) error

func gormTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

// internal wraps unexpected repository failures.
func internal(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
