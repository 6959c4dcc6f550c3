package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"transit/internal/http/middleware"
	"transit/internal/repositories"
	"transit/internal/tracking"
	"transit/internal/utils"
)

// liveRegistry is the process-wide set of open tracking subscribers.
var liveRegistry = tracking.NewRegistry()

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func liveHub(c *gin.Context) tracking.Hub {
	return tracking.Hub{
		Registry:  liveRegistry,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /ws/live-tracking upgrades to a websocket subscriber channel.
// Inbound text is echoed to every subscriber, sender included. There is no
// idle timeout; the connection lives until the transport reports closure.
func LiveTracking(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "websocket upgrade failed", err)
		return
	}

	liveRegistry.Register(conn)
	hub := liveHub(c)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			liveRegistry.Unregister(conn)
			_ = conn.Close()
			return
		}
		hub.Echo(string(message))
	}
}

// GET /ws/broadcast-location/:bus_id pushes the stored location for a bus
// to every subscriber. A bus with no stored location is reported back
// without failing the request.
func BroadcastLocation(c *gin.Context) {
	busID, ok := idParam(c, "bus_id")
	if !ok {
		return
	}

	sent, err := liveHub(c).Publish(busID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !sent {
		c.JSON(http.StatusOK, gin.H{"status": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "broadcasted"})
}

type upsertLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
}

// POST /api/locations/:bus_id accepts a producer-side GPS fix.
func UpsertLocation(c *gin.Context) {
	busID, ok := idParam(c, "bus_id")
	if !ok {
		return
	}

	var req upsertLocationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	hub := liveHub(c)
	if err := hub.Upsert(busID, req.Latitude, req.Longitude, req.Speed, req.Heading); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "tracking", "upsert",
		"bus_id="+c.Param("bus_id"))
	c.JSON(http.StatusOK, gin.H{"message": "location updated"})
}

// GET /api/locations lists the current live locations for the dashboard map.
func GetLocations(c *gin.Context) {
	locations, err := repositories.LocationRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}
