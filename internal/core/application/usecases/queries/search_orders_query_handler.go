package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// SearchOrdersQueryHandler serves the operator order listing. Every record carries
// the "name*qty;" summary of its lines.
type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) (Page[OrderView], error) {
	if err := query.Validate(); err != nil {
		return Page[OrderView]{}, err
	}

	conds := []string{"TRUE"}
	args := make([]any, 0, 5)
	f := query.filter
	if f.Status != 0 {
		conds = append(conds, "status = ?")
		args = append(args, int(f.Status))
	}
	if f.Number != "" {
		conds = append(conds, "number LIKE ?")
		args = append(args, "%"+escapeLike(f.Number)+"%")
	}
	if f.Phone != "" {
		conds = append(conds, "phone LIKE ?")
		args = append(args, "%"+escapeLike(f.Phone)+"%")
	}
	if f.Begin != nil {
		conds = append(conds, "order_time >= ?")
		args = append(args, *f.Begin)
	}
	if f.End != nil {
		conds = append(conds, "order_time <= ?")
		args = append(args, *f.End)
	}
	where := strings.Join(conds, " AND ")

	var total int64
	if err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total).Error; err != nil {
		return Page[OrderView]{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+where+`
		ORDER BY order_time DESC, id DESC
		LIMIT ? OFFSET ?
	`, append(args, query.paging.limit(), query.paging.offset())...).Rows()
	if err != nil {
		return Page[OrderView]{}, err
	}

	views, err := scanOrders(rows)
	if err != nil {
		return Page[OrderView]{}, err
	}
	if err = attachLines(ctx, h.db, views); err != nil {
		return Page[OrderView]{}, err
	}

	return Page[OrderView]{Total: total, Records: views}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
