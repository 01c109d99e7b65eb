package handlers

import (
	"net/http"
	"strconv"

	"uhoo_bridge/internal/service"

	"github.com/gin-gonic/gin"
)

const errLimitInvalid = "invalid 'limit'; use a positive integer"

// @Summary      List stored readings
// @Description  Newest first. Time bounds accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'.
// @Tags         readings
// @Produce      json
// @Param        from   query   string  false  "Start of range"
// @Param        to     query   string  false  "End of range; date-only means end of day"
// @Param        limit  query   int     false  "Maximum rows (default 500, max 5000)"
// @Success      200    {object}  map[string]interface{}  "count, readings"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/readings [get]
// @Security     BearerAuth
func (h *Handler) listReadings(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		limit = v
	}

	readings, err := h.services.History(c.Request.Context(), service.ReadingFilter{From: from, To: to, Limit: limit})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load readings", "readings_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}

// @Summary      Latest stored reading
// @Tags         readings
// @Produce      json
// @Success      200  {object}  models.Reading
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/readings/latest [get]
// @Security     BearerAuth
func (h *Handler) latestReading(c *gin.Context) {
	r, err := h.services.ReadingHistory.Latest(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load reading", "readings_latest_failed", err)
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no readings yet"})
		return
	}
	c.JSON(http.StatusOK, r)
}
