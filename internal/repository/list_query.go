package repository

import (
	"context"
	"maps"
	"slices"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/yanuaran892/perpusmpn1sedati/internal/pagination"
	customError "github.com/yanuaran892/perpusmpn1sedati/pkg/errors"
)

const (
	dialectPostgres = "postgres"
	colTotalCount   = "total_count"
)

var dialect = goqu.Dialect(dialectPostgres)

type matchMode int

const (
	matchEqual matchMode = iota
	matchContains
)

type filterColumn struct {
	column string
	mode   matchMode
}

func equalTo(column string) filterColumn  { return filterColumn{column: column, mode: matchEqual} }
func contains(column string) filterColumn { return filterColumn{column: column, mode: matchContains} }

// FilterSpec maps the filter keys a list accepts to the columns they constrain.
type FilterSpec map[string]filterColumn

// listQuery describes one paginated view: its source, the columns it
// returns, which columns the search term matches and which filters it accepts.
type listQuery struct {
	from    *goqu.SelectDataset
	columns []any
	search  []string
	filters FilterSpec
	fixed   []exp.Expression
	order   []exp.OrderedExpression
}

// where builds the conditions for q. Unknown filter keys are refused.
func (l listQuery) where(q pagination.Query) ([]exp.Expression, error) {
	conditions := slices.Clone(l.fixed)

	active := q.ActiveFilters()
	for _, key := range slices.Sorted(maps.Keys(active)) {
		spec, ok := l.filters[key]
		if !ok {
			return nil, customError.WrapInvalidFilter(key)
		}
		value := active[key]
		switch spec.mode {
		case matchContains:
			conditions = append(conditions, goqu.I(spec.column).ILike("%"+value+"%"))
		default:
			conditions = append(conditions, goqu.I(spec.column).Eq(value))
		}
	}

	if q.Search != "" && len(l.search) > 0 {
		pattern := "%" + q.Search + "%"
		matches := make([]exp.Expression, 0, len(l.search))
		for _, column := range l.search {
			matches = append(matches, goqu.I(column).ILike(pattern))
		}
		conditions = append(conditions, goqu.Or(matches...))
	}

	return conditions, nil
}

// pageSQL selects one page together with the total row count of the
// filtered set, so rows and total always come from the same snapshot.
func (l listQuery) pageSQL(q pagination.Query) (string, []any, error) {
	conditions, err := l.where(q)
	if err != nil {
		return "", nil, err
	}

	columns := append(slices.Clone(l.columns), goqu.L("COUNT(*) OVER()").As(colTotalCount))
	selectStmt := l.from.
		Select(columns...).
		Where(conditions...).
		Order(l.order...).
		Limit(uint(q.Limit())).
		Offset(uint(q.Offset())).
		Prepared(true)

	return selectStmt.ToSQL()
}

// countSQL counts the filtered set without fetching rows.
func (l listQuery) countSQL(q pagination.Query) (string, []any, error) {
	conditions, err := l.where(q)
	if err != nil {
		return "", nil, err
	}

	return l.from.
		Select(goqu.COUNT(goqu.Star()).As(colTotalCount)).
		Where(conditions...).
		Prepared(true).
		ToSQL()
}

// fetchPage runs l for q. A page past the end is refused with the real
// page count instead of returning an empty page.
func fetchPage[T pagination.Row](ctx context.Context, db sqlx.QueryerContext, l listQuery, q pagination.Query) (*pagination.Page[T], error) {
	sqlQuery, args, err := l.pageSQL(q)
	if err != nil {
		return nil, toSQLError(err)
	}

	var rows []T
	if err := sqlx.SelectContext(ctx, db, &rows, sqlQuery, args...); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if len(rows) > 0 {
		return pagination.NewPage(rows, rows[0].Total(), q), nil
	}

	if q.Page > 1 {
		countQuery, countArgs, err := l.countSQL(q)
		if err != nil {
			return nil, toSQLError(err)
		}
		var total int64
		if err := sqlx.GetContext(ctx, db, &total, countQuery, countArgs...); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		return nil, customError.WrapPageOutOfRange(q.Page, pagination.TotalPages(total, q.PageSize))
	}

	return pagination.NewPage(rows, 0, q), nil
}

func toSQLError(err error) error {
	if customError.Code(err) != "" {
		return err
	}
	return customError.WrapDatabaseError(err)
}
