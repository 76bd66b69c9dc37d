package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"shearbook/models"
	"shearbook/realtime"
	"shearbook/services/reservation"
	"shearbook/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

// FeedHandler serves the live blocked-slot feed over websocket.
type FeedHandler struct {
	Hub    *realtime.Hub
	Svc    reservation.ReservationService
	Logger *zap.Logger
}

func NewFeedHandler(hub *realtime.Hub, svc reservation.ReservationService, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{Hub: hub, Svc: svc, Logger: logger}
}

// Subscribe handles GET /api/shops/:id/feed?date=&employeeId=. The
// client gets a snapshot of currently blocked times, then incremental
// updates until it disconnects. Changing date or employee means opening
// a fresh socket; the old subscription is torn down on disconnect so no
// updates leak into a stale view.
func (h *FeedHandler) Subscribe(c *gin.Context) {
	shopID := c.Param("id")
	date := c.Query("date")
	employeeKey := c.Query("employeeId")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	blocked, err := h.Svc.BlockedTimes(c.Request.Context(), shopID, date, employeeKey)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load slot feed", "")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.Hub.Subscribe(realtime.FeedKey(shopID, date, employeeKey), conn)
	defer sub.Close()

	snapshot, err := json.Marshal(models.FeedSnapshot{
		ShopID:       shopID,
		Date:         date,
		EmployeeKey:  employeeKey,
		BlockedTimes: blocked,
	})
	if err == nil {
		if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
			return
		}
	}

	// Block until the client disconnects; updates are pushed by the hub.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
