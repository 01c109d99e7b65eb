package handlers

import (
	"context"
	"net/http"
	"sync"

	"uhoo_bridge/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK        = "ok"
	statusRefreshed = "refreshed"

	errGetState = "failed to load accessory state"
	errRefresh  = "refresh failed; serving cached value"
)

// logAndJSONError logs err under logKey and writes userMsg with httpCode.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...any) {
	if h.log != nil && err != nil {
		fields := append([]any{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Description  Reports the vendor session state: NO_TOKEN, AUTHENTICATING or AUTHENTICATED.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	resp := gin.H{"status": statusOK}
	if h.services.Session != nil {
		resp["session"] = h.services.State().String()
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Get accessory state
// @Description  Characteristic values currently published by the bridge.
// @Tags         accessory
// @Produce      json
// @Success      200  {object}  models.AccessoryState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/accessory/state [get]
// @Security     BearerAuth
func (h *Handler) getAccessoryState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "accessory_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Refresh now
// @Description  Fetches a reading from the vendor immediately. On failure the cached air quality is returned with 502.
// @Tags         accessory
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, air_quality, state"
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]interface{}  "error, air_quality"
// @Router       /api/v1/accessory/refresh [post]
// @Security     BearerAuth
func (h *Handler) refreshAccessory(c *gin.Context) {
	ctx := c.Request.Context()
	q, err := h.services.Refresh(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Warnw("accessory_refresh_failed", "err", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":       errRefresh,
			"detail":      err.Error(),
			"air_quality": q.String(),
		})
		return
	}

	resp := gin.H{"status": statusRefreshed, "air_quality": q.String()}
	if st, err := h.services.Monitoring.GetState(ctx); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Current air quality
// @Description  Answers at once with the cached air quality (UNKNOWN before the first reading) and fetches a fresh reading in the background; the fresh value is published to the accessory when it arrives.
// @Tags         accessory
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "air_quality, value, session"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/accessory/air-quality [get]
// @Security     BearerAuth
func (h *Handler) getAirQuality(c *gin.Context) {
	cached := make(chan models.AirQuality, 1)
	var first sync.Once

	// the background fetch must outlive this request
	ctx := context.WithoutCancel(c.Request.Context())
	h.services.GetReading(ctx, func(q models.AirQuality, err error) {
		delivered := false
		first.Do(func() {
			cached <- q
			delivered = true
		})
		if delivered || h.log == nil {
			return
		}
		if err != nil {
			h.log.Warnw("air_quality_fetch_failed", "err", err, "air_quality", q.String())
			return
		}
		h.log.Debugw("air_quality_fetched", "air_quality", q.String())
	})

	q := <-cached
	c.JSON(http.StatusOK, gin.H{
		"air_quality": q.String(),
		"value":       int(q),
		"session":     h.services.State().String(),
	})
}
