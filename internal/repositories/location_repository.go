package repositories

import (
	"database/sql"
	"errors"

	intconfig "transit/internal/config"
	"transit/internal/domain"
	"transit/internal/domain/models"
)

type LocationRepository struct {
	DB *sql.DB
}

func (r LocationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Upsert keeps at most one row per bus: the first write inserts, every
// later write overwrites in place and refreshes last_updated. Concurrent
// writers for the same bus are last-writer-wins.
func (r LocationRepository) Upsert(loc models.BusLocation) error {
	if loc.BusID <= 0 {
		return domain.ValidationError{Field: "bus_id", Msg: "invalid id"}
	}

	_, err := r.db().Exec(`
		INSERT INTO live_bus_locations (bus_id, latitude, longitude, speed, heading)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			latitude=VALUES(latitude),
			longitude=VALUES(longitude),
			speed=VALUES(speed),
			heading=VALUES(heading),
			last_updated=CURRENT_TIMESTAMP`,
		loc.BusID, loc.Latitude, loc.Longitude, loc.Speed, loc.Heading,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r LocationRepository) GetByBusID(busID int64) (models.BusLocation, error) {
	if busID <= 0 {
		return models.BusLocation{}, domain.ValidationError{Field: "bus_id", Msg: "invalid id"}
	}

	var loc models.BusLocation
	err := r.db().QueryRow(`
		SELECT bus_id, latitude, longitude, speed, COALESCE(heading, 0), last_updated
		FROM live_bus_locations
		WHERE bus_id=? LIMIT 1`, busID).Scan(
		&loc.BusID,
		&loc.Latitude,
		&loc.Longitude,
		&loc.Speed,
		&loc.Heading,
		&loc.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BusLocation{}, domain.NotFoundError{Resource: "live location", Err: err}
		}
		return models.BusLocation{}, domain.InternalError{Err: err}
	}
	return loc, nil
}

func (r LocationRepository) List() ([]models.BusLocation, error) {
	rows, err := r.db().Query(`
		SELECT bus_id, latitude, longitude, speed, COALESCE(heading, 0), last_updated
		FROM live_bus_locations
		ORDER BY bus_id`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.BusLocation{}
	for rows.Next() {
		var loc models.BusLocation
		if err := rows.Scan(
			&loc.BusID,
			&loc.Latitude,
			&loc.Longitude,
			&loc.Speed,
			&loc.Heading,
			&loc.LastUpdated,
		); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}
