package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/glencullen/golfpoi/internal/httpresp"
	"github.com/glencullen/golfpoi/internal/weather"
)

type WeatherHandler struct {
	weather weather.Service
}

func NewWeatherHandler(svc weather.Service) *WeatherHandler {
	return &WeatherHandler{weather: svc}
}

// GetWeather returns current conditions for the coordinates. Lookup
// failures come back as an empty object, never as an error.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	latitude := c.Param("latitude")
	longitude := c.Param("longitude")

	conditions := h.weather.Current(c.Request.Context(), latitude, longitude)

	httpresp.OK(c, conditions)
}
