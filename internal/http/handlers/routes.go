package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transit/internal/repositories"
)

// Route records are managed by the fleet tooling; this service exposes the
// read surface clients need to pick a route and price a booking.

func GetRoutes(c *gin.Context) {
	routes, err := repositories.RouteRepository{}.List(pagination(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func GetRoute(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	route, err := repositories.RouteRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}
