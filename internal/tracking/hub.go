package tracking

import (
	"database/sql"
	"encoding/json"
	"fmt"

	intconfig "transit/internal/config"
	"transit/internal/domain"
	"transit/internal/domain/models"
	"transit/internal/repositories"
	"transit/internal/utils"
)

// Hub owns the latest-known location per bus and fans updates out to the
// subscriber registry. Storage writes and broadcasts are decoupled: Upsert
// only persists, Publish only reads and broadcasts.
type Hub struct {
	LocationRepo repositories.LocationRepository
	Registry     *Registry
	DB           *sql.DB
	RequestID    string
}

func (h Hub) db() *sql.DB {
	if h.DB != nil {
		return h.DB
	}
	return intconfig.DB
}

func (h Hub) locations() repositories.LocationRepository {
	if h.LocationRepo.DB != nil {
		return h.LocationRepo
	}
	return repositories.LocationRepository{DB: h.db()}
}

// Upsert stores the quantized fix for busID, overwriting any previous row.
func (h Hub) Upsert(busID int64, lat, lon, speed, heading float64) error {
	if lat < -90 || lat > 90 {
		return domain.ValidationError{Field: "latitude", Msg: "out of range"}
	}
	if lon < -180 || lon > 180 {
		return domain.ValidationError{Field: "longitude", Msg: "out of range"}
	}

	return h.locations().Upsert(models.BusLocation{
		BusID:     busID,
		Latitude:  RoundCoordinate(lat),
		Longitude: RoundCoordinate(lon),
		Speed:     QuantizeSpeed(speed),
		Heading:   QuantizeHeading(heading),
	})
}

type locationMessage struct {
	BusID     int64   `json:"bus_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
}

// Publish broadcasts the stored location for busID to every subscriber.
// A bus with no stored location is not an error: Publish reports false and
// nothing is sent.
func (h Hub) Publish(busID int64) (bool, error) {
	loc, err := h.locations().GetByBusID(busID)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	payload, err := json.Marshal(locationMessage{
		BusID:     loc.BusID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Speed:     loc.Speed,
	})
	if err != nil {
		return false, domain.InternalError{Err: err}
	}

	h.Registry.Broadcast(payload)
	utils.LogEvent(h.RequestID, "tracking", "publish", fmt.Sprintf("bus_id=%d", busID))
	return true, nil
}

// Echo relays raw subscriber text to every subscriber, sender included.
func (h Hub) Echo(text string) {
	h.Registry.Broadcast([]byte("Message: " + text))
}
