package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Version is set at link time with -ldflags "-X ...handlers.Version=".
var Version = "dev"

const readyTimeout = 2 * time.Second

// Database is what the probes need from storage. *postgres.TxManager
// satisfies it.
type Database interface {
	Ping(ctx context.Context) error
	Pool() *pgxpool.Pool
}

// HealthHandler serves /health/live, /health/ready and /health/info.
type HealthHandler struct {
	db      Database
	appName string
}

func NewHealthHandler(db Database, appName string) *HealthHandler {
	if appName == "" {
		appName = "tutorcenter"
	}
	return &HealthHandler{db: db, appName: appName}
}

// Live never touches the database.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings the database with a short deadline.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	status, db := http.StatusOK, "healthy"
	if err := h.db.Ping(ctx); err != nil {
		status, db = http.StatusServiceUnavailable, "unhealthy: "+err.Error()
	}
	body := gin.H{"status": "ok", "checks": gin.H{"database": db}}
	if status != http.StatusOK {
		body["status"] = "error"
	}
	c.JSON(status, body)
}

func (h *HealthHandler) Info(c *gin.Context) {
	info := gin.H{"app": h.appName, "version": Version}
	if pool := h.db.Pool(); pool != nil {
		s := pool.Stat()
		info["database"] = gin.H{
			"total_conns":    s.TotalConns(),
			"acquired_conns": s.AcquiredConns(),
			"idle_conns":     s.IdleConns(),
			"max_conns":      s.MaxConns(),
		}
	}
	c.JSON(http.StatusOK, info)
}
