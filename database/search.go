package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dailylog/models"
)

// SearchQueryParser turns free text typed into the log search box into a
// PostgreSQL tsquery. Words are AND-ed; tsquery operators typed by the user are dropped.
type SearchQueryParser struct {
	minLength int
	maxLength int
	minWord   int
}

// NewSearchQueryParser creates a SearchQueryParser with default limits:
// 3 to 1000 characters overall, words of at least 2 characters.
func NewSearchQueryParser() *SearchQueryParser {
	return &SearchQueryParser{
		minLength: 3,
		maxLength: 1000,
		minWord:   2,
	}
}

var tsqueryOperators = strings.NewReplacer(
	`"`, " ", "'", " ", "(", " ", ")", " ",
	"&", " ", "|", " ", "!", " ", ":", " ", "*", " ", "<", " ", ">", " ",
)

// Parse converts a search phrase to tsquery syntax.
//
// Examples:
//
//	"Poured Concrete" → "poured & concrete"
//	"scaffolding (level 3)" → "scaffolding & level"
//	"a wall b" → "wall"
//
// Returns error if query is too short, too long, or becomes empty after filtering.
func (p *SearchQueryParser) Parse(query string) (string, error) {
	query = strings.TrimSpace(query)

	if len(query) < p.minLength {
		return "", fmt.Errorf("search query must be at least %d characters", p.minLength)
	}
	if len(query) > p.maxLength {
		return "", fmt.Errorf("search query too long (max %d characters)", p.maxLength)
	}

	words := strings.Fields(tsqueryOperators.Replace(query))
	if len(words) == 0 {
		return "", fmt.Errorf("search query is empty")
	}

	terms := []string{}
	for _, word := range words {
		if len(word) >= p.minWord {
			terms = append(terms, strings.ToLower(word))
		}
	}
	if len(terms) == 0 {
		return "", fmt.Errorf("no valid search terms")
	}

	return strings.Join(terms, " & "), nil
}

// SearchLogs performs full-text search on work descriptions using PostgreSQL GIN indexes.
// Results are ranked by relevance (ts_rank) and work date (DESC).
//
// Search query is parsed and sanitized before execution to prevent injection.
// Supports filtering by project, status, and date range in addition to text search.
// Uses COUNT(*) OVER() to get total matches in a single query.
//
// Returns:
//   - logs: matching entries with Rank field populated
//   - total: total count of matches (for pagination)
//   - error: if query is invalid or database fails
func (db *DB) SearchLogs(ctx context.Context, params models.LogQueryParams) ([]models.DailyLog, int64, error) {
	start := time.Now()
	defer func() {
		db.logger.Info("SearchLogs", "query", params.Search, "duration_ms", time.Since(start).Milliseconds())
	}()

	parser := NewSearchQueryParser()
	tsQuery, err := parser.Parse(params.Search)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: search query: %v", ErrInvalidFilter, err)
	}

	limit := validateLimit(params.Limit, defaultLimit, maxLimit)
	offset := validateOffset(params.Offset)

	qb := NewQueryBuilder()
	searchArg := qb.NextArgNum()
	qb.AddFullTextSearch(tsQuery)
	if err := addLogFilters(qb, params); err != nil {
		return nil, 0, err
	}

	// SAFETY: All user input is parameterized. whereClause only contains safe SQL.
	query := fmt.Sprintf(`
		SELECT %s,
			ts_rank(to_tsvector('english', %s), to_tsquery('english', $%d)) as rank,
			COUNT(*) OVER() as total_count
		FROM daily_logs l
		JOIN projects p ON p.id = l.project_id
		%s
		ORDER BY rank DESC, %s DESC
		LIMIT $%d OFFSET $%d
	`, selectLogColumns, columnWorkDescription, searchArg, qb.WhereClause(), columnWorkDate,
		qb.NextArgNum(), qb.NextArgNum()+1)

	args := append(qb.Args(), limit, offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows, true)
}
