package api

import (
	"github.com/labstack/echo"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
)

// Handler contains all properties to serve the API
type Handler struct {
	nc    *nats.Conn
	store storage.Interface
	ctrl  *agentcontrol.Controller
}

// NewHandler create a new API handler
func NewHandler(nc *nats.Conn, store storage.Interface, ctrl *agentcontrol.Controller) *Handler {
	return &Handler{
		nc:    nc,
		store: store,
		ctrl:  ctrl,
	}
}

// RegisterRoutes attaches the handlers to the echo web server
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	log.Debug("Register API routes")
	api := e.Group("/api/v1")
	api.GET("/peers", h.handleFetchPeers)
	api.POST("/peers", h.handleCreatePeer)
	api.GET("/peers/:id", h.handleGetPeerByID)
	api.DELETE("/peers/:id", h.handleDeletePeer)

	api.GET("/sessions", h.handleFetchSessions)

	api.GET("/events", h.handleFetchEvents)

	api.GET("/peers/:namespace/:id/properties", h.handleFetchProperties)
	api.GET("/peers/:namespace/:id/properties/:property", h.handleGetProperty)
	api.PUT("/peers/:namespace/:id/properties/:property", h.handleSetProperty)
	api.POST("/peers/:namespace/:id/mousemove", h.handleMouseMove)

	api.Any("/realtime-events", h.realtimeEventsHandler())
}
