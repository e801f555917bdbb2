package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"

	"github.com/Jonathan-Adapt/pcbridge/pkg/api/resource"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
)

func (h *Handler) handleFetchPeers(c echo.Context) error {
	m, err := h.store.Peers().FetchAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, resource.NewPeerList(m))
}

func (h *Handler) handleGetPeerByID(c echo.Context) error {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err)
	}

	m, err := h.store.Peers().FindByID(int32(id))
	if err != nil && err == storage.ErrNotFound {
		return c.JSON(http.StatusNotFound, err)
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, resource.NewPeer(m))
}

func (h *Handler) handleCreatePeer(c echo.Context) error {
	r := &resource.PeerResource{}
	if err := c.Bind(r); err != nil {
		return c.JSON(http.StatusBadRequest, err)
	}

	m, err := resource.ValidatePeer(r)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err)
	}

	err = h.store.Peers().Create(m)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	// Bring the session up right away so the peer is controllable without a
	// restart.
	if _, err := h.ctrl.OpenSession(*m); err != nil {
		log.Errorf("api could not open session for new peer '%s': %v", m.PeerID, err)
	}

	return c.JSON(http.StatusCreated, resource.NewPeer(m))
}

func (h *Handler) handleDeletePeer(c echo.Context) error {
	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err)
	}

	m, err := h.store.Peers().FindByID(int32(id))
	if err != nil && err == storage.ErrNotFound {
		return c.JSON(http.StatusNotFound, err)
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	if err := h.ctrl.CloseSession(m.Namespace, m.PeerID); err != nil {
		log.Warnf("api could not close session for peer '%s': %v", m.PeerID, err)
	}

	err = h.store.Peers().Delete(int32(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusNoContent, nil)
}
