package repositories

import (
	"database/sql"
	"errors"

	intconfig "transit/internal/config"
	"transit/internal/domain"
	"transit/internal/domain/models"
)

// RouteRepository is read-only: routes are managed by the fleet tooling,
// this service only resolves them as the fare source for bookings.
type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	if id <= 0 {
		return models.Route{}, domain.ValidationError{Field: "route_id", Msg: "invalid id"}
	}

	query := `
		SELECT id, route_number, route_name, start_location, end_location,
		       COALESCE(distance_km, 0), fare, is_active, created_at
		FROM routes
		WHERE id=? LIMIT 1`

	var rt models.Route
	err := r.db().QueryRow(query, id).Scan(
		&rt.ID,
		&rt.RouteNumber,
		&rt.RouteName,
		&rt.StartLocation,
		&rt.EndLocation,
		&rt.DistanceKM,
		&rt.Fare,
		&rt.IsActive,
		&rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	return rt, nil
}

func (r RouteRepository) List(p domain.Pagination) ([]models.Route, error) {
	p = p.Clamp()

	query := `
		SELECT id, route_number, route_name, start_location, end_location,
		       COALESCE(distance_km, 0), fare, is_active, created_at
		FROM routes
		ORDER BY id
		LIMIT ? OFFSET ?`

	rows, err := r.db().Query(query, p.Limit, p.Offset)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(
			&rt.ID,
			&rt.RouteNumber,
			&rt.RouteName,
			&rt.StartLocation,
			&rt.EndLocation,
			&rt.DistanceKM,
			&rt.Fare,
			&rt.IsActive,
			&rt.CreatedAt,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
