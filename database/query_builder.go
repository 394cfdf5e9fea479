package database

import (
	"fmt"
	"strings"
	"time"
)

const (
	columnID              = "l.id"
	columnProjectID       = "l.project_id"
	columnStatus          = "l.status"
	columnWorkDate        = "l.work_date"
	columnWorkDescription = "l.work_description"
)

const dateLayout = "2006-01-02"

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	conditions []string
	args       []interface{}
	argCount   int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		conditions: []string{},
		args:       []interface{}{},
		argCount:   1,
	}
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// AddDateRange restricts column to the inclusive calendar range [from, to].
// Both bounds are optional and use the YYYY-MM-DD layout.
func (qb *QueryBuilder) AddDateRange(column, from, to string) error {
	if from != "" {
		fromDate, err := parseDate(from)
		if err != nil {
			return fmt.Errorf("invalid from date: %w", err)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s >= $%d::date", column, qb.argCount))
		qb.args = append(qb.args, fromDate.Format(dateLayout))
		qb.argCount++
	}

	if to != "" {
		toDate, err := parseDate(to)
		if err != nil {
			return fmt.Errorf("invalid to date: %w", err)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s <= $%d::date", column, qb.argCount))
		qb.args = append(qb.args, toDate.Format(dateLayout))
		qb.argCount++
	}

	return nil
}

func (qb *QueryBuilder) AddFullTextSearch(searchQuery string) {
	qb.conditions = append(qb.conditions,
		fmt.Sprintf("to_tsvector('english', %s) @@ to_tsquery('english', $%d)", columnWorkDescription, qb.argCount))
	qb.args = append(qb.args, searchQuery)
	qb.argCount++
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

func (qb *QueryBuilder) NextArgNum() int {
	return qb.argCount
}

// Helper functions

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func validateLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func validateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
