package queries

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListShipmentsQueryHandler retrieves shipment ledger pages from the database.
type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewListShipmentsQueryHandler creates a handler for shipment list queries.
func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

// Handle executes the list query. Results are ordered newest first.
func (h ListShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsQuery,
) (ListShipmentsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListShipmentsResponse{}, err
	}

	where, args := buildShipmentFilter(query)

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM shipments "+where, args...).
		Scan(&total).Error
	if err != nil {
		return ListShipmentsResponse{}, err
	}

	pageArgs := append(args, query.pageSize, (query.page-1)*query.pageSize)

	rows, err := h.db.WithContext(ctx).Raw(
		"SELECT "+shipmentColumns+" FROM shipments "+where+
			" ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		pageArgs...,
	).Rows()
	if err != nil {
		return ListShipmentsResponse{}, err
	}
	defer rows.Close()

	shipments := make([]ShipmentResponse, 0, query.pageSize)
	for rows.Next() {
		resp, scanErr := scanShipmentRow(rows)
		if scanErr != nil {
			return ListShipmentsResponse{}, scanErr
		}
		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return ListShipmentsResponse{}, err
	}

	return ListShipmentsResponse{
		Shipments: shipments,
		Total:     total,
		Page:      query.page,
		PageSize:  query.pageSize,
	}, nil
}

// buildShipmentFilter translates the query filters into a WHERE clause.
func buildShipmentFilter(query ListShipmentsQuery) (string, []any) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 5)

	if !query.includeCancelled {
		conditions = append(conditions, "NOT is_cancelled")
	}
	if query.status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, int(*query.status))
	}
	if query.nature != nil {
		conditions = append(conditions, "nature = ?")
		args = append(args, int(*query.nature))
	}
	if query.unattachedOnly {
		conditions = append(conditions, "departure_id IS NULL")
	}
	if query.search != "" {
		conditions = append(conditions,
			"(waybill_number ILIKE ? OR sender_name ILIKE ? OR receiver_name ILIKE ?)")
		pattern := fmt.Sprintf("%%%s%%", query.search)
		args = append(args, pattern, pattern, pattern)
	}
	if query.route != "" {
		conditions = append(conditions, "route ILIKE ?")
		args = append(args, fmt.Sprintf("%%%s%%", query.route))
	}
	if query.from != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *query.from)
	}
	if query.to != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *query.to)
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
