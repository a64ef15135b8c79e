package repository

import (
	"fmt"
	"strings"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
)

// Column names in generated SQL always come from the allowlists below, never
// from request data.
var (
	eventColumns = []string{
		"event_name", "description", "event_date", "event_time", "location",
		"event_type", "image_url", "created_by", "status", "is_featured", "show_on_home",
	}
	blogColumns = []string{
		"title", "category", "content", "excerpt", "image_url", "author_id", "is_featured", "is_active",
	}
	reviewColumns = []string{
		"property_id", "user_id", "rating", "content",
	}
)

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// buildInsert renders an INSERT for the allowed columns present in f.
func buildInsert(table string, f model.Fields, allowed []string) (string, []any, error) {
	cols := f.Columns(allowed)
	if len(cols) == 0 {
		return "", nil, apperror.Validation("No fields to insert")
	}
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		args = append(args, f[c])
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), placeholders(len(cols)))
	return q, args, nil
}

// buildUpdate renders an UPDATE ... WHERE id = ? for the allowed columns
// present in f and bumps updated_at.
func buildUpdate(table string, id uint64, f model.Fields, allowed []string) (string, []any, error) {
	cols := f.Columns(allowed)
	if len(cols) == 0 {
		return "", nil, apperror.Validation("No valid fields to update")
	}
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c+" = ?")
		args = append(args, f[c])
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	return q, args, nil
}

// whereClause joins conditions with AND, defaulting to a tautology.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return "1=1"
	}
	return strings.Join(conds, " AND ")
}

// likePattern escapes LIKE wildcards in user search text.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

func boolPtrArg(b *bool) int {
	if *b {
		return 1
	}
	return 0
}
