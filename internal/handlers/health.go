package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Arhonist/nextjs-dashboard/httpx"
	"github.com/Arhonist/nextjs-dashboard/internal/db"
)

type HealthHandler struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewHealthHandler(conn *gorm.DB, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{db: conn, log: log}
}

// Live reports that the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready also checks the database connection.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(h.db); err != nil {
		h.log.WithError(err).Warn("readiness check failed")
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
