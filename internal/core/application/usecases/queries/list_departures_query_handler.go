package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListDeparturesQueryHandler retrieves departure pages from the database.
type ListDeparturesQueryHandler struct {
	db *gorm.DB
}

// NewListDeparturesQueryHandler creates a handler for departure list queries.
func NewListDeparturesQueryHandler(db *gorm.DB) ListDeparturesQueryHandler {
	return ListDeparturesQueryHandler{db: db}
}

// Handle executes the list query. Results are ordered newest first.
func (h ListDeparturesQueryHandler) Handle(
	ctx context.Context,
	query ListDeparturesQuery,
) (ListDeparturesResponse, error) {
	if err := query.Validate(); err != nil {
		return ListDeparturesResponse{}, err
	}

	where := ""
	args := make([]any, 0, 3)
	if query.status != nil {
		where = "WHERE d.status = ?"
		args = append(args, int(*query.status))
	}

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM departures d "+where, args...).
		Scan(&total).Error
	if err != nil {
		return ListDeparturesResponse{}, err
	}

	pageArgs := append(args, query.pageSize, (query.page-1)*query.pageSize)

	rows, err := h.db.WithContext(ctx).Raw(
		"SELECT "+departureColumns+" FROM departures d "+departureMemberJoin+" "+where+
			" ORDER BY d.created_at DESC, d.id LIMIT ? OFFSET ?",
		pageArgs...,
	).Rows()
	if err != nil {
		return ListDeparturesResponse{}, err
	}
	defer rows.Close()

	departures := make([]DepartureResponse, 0, query.pageSize)
	for rows.Next() {
		resp, scanErr := scanDepartureRow(rows)
		if scanErr != nil {
			return ListDeparturesResponse{}, scanErr
		}
		departures = append(departures, resp)
	}

	if err = rows.Err(); err != nil {
		return ListDeparturesResponse{}, err
	}

	return ListDeparturesResponse{
		Departures: departures,
		Total:      total,
		Page:       query.page,
		PageSize:   query.pageSize,
	}, nil
}
