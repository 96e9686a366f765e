package postgres

import (
	"fmt"
	"strings"

	"github.com/carecamp/carecamp-api/internal/store"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// campSearch is the SQL form of a store.CampQuery.
type campSearch struct {
	where   string
	args    []any
	orderBy string
}

// buildCampSearch translates q into a WHERE clause over the camp document and
// an ORDER BY list. The search term is escaped so it matches literally.
func buildCampSearch(q store.CampQuery) campSearch {
	s := campSearch{where: "TRUE", orderBy: campOrderBy(q.Sort)}
	if q.Search == "" {
		return s
	}

	s.args = []any{"%" + likeEscaper.Replace(q.Search) + "%"}
	clauses := make([]string, 0, len(store.SearchFields))
	for _, field := range store.SearchFields {
		clauses = append(clauses, fmt.Sprintf("doc->>'%s' ILIKE $1", field))
	}
	s.where = "(" + strings.Join(clauses, " OR ") + ")"
	return s
}

// campOrderBy mirrors the sort orders of the document store, ending with id
// so pages never overlap on ties.
func campOrderBy(sort store.CampSort) string {
	switch sort {
	case store.SortParticipant:
		return "COALESCE((doc->>'participantCount')::int, 0) DESC, id ASC"
	case store.SortFeesLow:
		return "(doc->>'campFees')::numeric ASC, id ASC"
	case store.SortFeesHigh:
		return "(doc->>'campFees')::numeric DESC, id ASC"
	case store.SortName:
		return "doc->>'campName' ASC, id ASC"
	default:
		return "id ASC"
	}
}

// pageQuery returns the SELECT for one page of s with LIMIT and OFFSET
// bound to the two placeholders after s.args.
func (s campSearch) pageQuery() string {
	n := len(s.args)
	return fmt.Sprintf(
		"SELECT doc FROM camps WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		s.where, s.orderBy, n+1, n+2,
	)
}

// countQuery returns the SELECT counting every match of s.
func (s campSearch) countQuery() string {
	return "SELECT count(*) FROM camps WHERE " + s.where
}
