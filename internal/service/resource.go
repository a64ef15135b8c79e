// Package service holds the business rules for accounts, events, blogs and
// reviews.  Every resource operation follows the same order: validate the
// input, authorize the caller, persist, and let classified errors travel
// back to the handler unchanged.
package service

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// serverManaged keys are never accepted from a client payload.
var serverManaged = []string{"id", "created_at", "updated_at"}

// requireFields reports every listed field that is absent or blank, not just
// the first one.
func requireFields(data model.Fields, names ...string) error {
	var missing []string
	for _, n := range names {
		if isBlank(data[n]) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return apperror.MissingFields(missing...)
	}
	return nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// rejectBlank fails when any of names is present in f but blank.  It runs
// after sanitizing, so a field made only of markup counts as blank.
func rejectBlank(f model.Fields, names ...string) error {
	var blank []string
	for _, n := range names {
		if v, ok := f[n]; ok && isBlank(v) {
			blank = append(blank, n)
		}
	}
	if len(blank) == 0 {
		return nil
	}
	return &apperror.Error{
		Kind:    apperror.KindValidation,
		Message: strings.Join(blank, ", ") + " must not be empty",
		Fields:  blank,
	}
}

// plainText strips every tag from v.  The sanitizer escapes entities on the
// way out; they are decoded again so the column stores the text as typed.
func plainText(p *bluemonday.Policy, v any) string {
	str, _ := v.(string)
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(str)))
}

// sanitizePatch copies the keys of data that appear in allowed, dropping
// server-managed keys and the owner column whatever the allowlist says.
func sanitizePatch(data model.Fields, allowed []string, ownerColumn string) model.Fields {
	out := make(model.Fields, len(data))
	for _, k := range allowed {
		v, ok := data[k]
		if !ok || k == ownerColumn || contains(serverManaged, k) {
			continue
		}
		out[k] = v
	}
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// normalizeTime accepts HH:MM or HH:MM:SS and always returns HH:MM:SS.
func normalizeTime(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", apperror.Validation("event_time must be a string in HH:MM or HH:MM:SS format")
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", apperror.Validation("event_time must be in HH:MM or HH:MM:SS format")
}

// normalizeDate accepts YYYY-MM-DD or a full RFC 3339 timestamp and returns
// the calendar date.
func normalizeDate(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", apperror.Validation("event_date must be a string in YYYY-MM-DD format")
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02"), nil
	}
	return "", apperror.Validation("event_date must be in YYYY-MM-DD format")
}

// coerceBool turns the loose flag encodings clients send into a bool.
func coerceBool(field string, v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case float64:
		return t != 0, nil
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "on":
			return true, nil
		case "false", "0", "no", "off", "":
			return false, nil
		}
	}
	return false, apperror.Validation(fmt.Sprintf("%s must be a boolean", field))
}

// coerceBools rewrites every flag present in f as a bool.
func coerceBools(f model.Fields, names ...string) error {
	for _, n := range names {
		v, ok := f[n]
		if !ok {
			continue
		}
		b, err := coerceBool(n, v)
		if err != nil {
			return err
		}
		f[n] = b
	}
	return nil
}

// toInt accepts JSON numbers and numeric strings.  Fractions are rejected.
func toInt(field string, v any) (int64, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, apperror.Validation(fmt.Sprintf("%s must be an integer", field))
		}
		return int64(t), nil
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case uint64:
		return int64(t), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err == nil {
			return n, nil
		}
	}
	return 0, apperror.Validation(fmt.Sprintf("%s must be an integer", field))
}

// authorizeOwner fails unless the requester owns the resource.
func authorizeOwner(ownerID, requesterID uint64, resource string) error {
	if requesterID == 0 || ownerID != requesterID {
		return apperror.Authorization(fmt.Sprintf("You are not authorized to modify this %s", resource))
	}
	return nil
}

func requireID(id uint64, resource string) error {
	if id == 0 {
		return apperror.Validation(fmt.Sprintf("%s ID is required", resource))
	}
	return nil
}

// Page is a normalized limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// NewPage parses raw query values.  Missing or unparsable values fall back to
// the defaults; limit is capped at MaxPageLimit and offset is never negative.
func NewPage(limit, offset string) Page {
	p := Page{Limit: DefaultPageLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if n, err := strconv.Atoi(strings.TrimSpace(offset)); err == nil && n > 0 {
		p.Offset = n
	}
	return p
}

func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Number is the 1-based page the offset falls on.
func (p Page) Number() int {
	return p.Offset/p.Limit + 1
}

func newListResult[T any](items []T, total int64, p Page) *model.ListResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return &model.ListResult[T]{
		Items:      items,
		Total:      total,
		Page:       p.Number(),
		Limit:      p.Limit,
		Offset:     p.Offset,
		TotalPages: pages,
	}
}
