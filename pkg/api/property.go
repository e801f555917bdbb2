package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol"
	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/message"
	"github.com/Jonathan-Adapt/pcbridge/pkg/api/resource"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
)

const busRequestTimeout = 16 * time.Second

func (h *Handler) handleFetchProperties(c echo.Context) error {
	namespace := c.Param("namespace")
	peerID := c.Param("id")

	sess, err := h.ctrl.Session(namespace, peerID)
	if err != nil {
		return c.JSON(http.StatusNotFound, err)
	}

	return c.JSON(http.StatusOK, resource.NewPropertyList(sess.Properties()))
}

func (h *Handler) handleGetProperty(c echo.Context) error {
	namespace := c.Param("namespace")
	peerID := c.Param("id")

	if ok, err := h.ensurePeerExists(c, namespace, peerID); !ok {
		return err
	}

	req := &message.PropertyGetRequest{Property: c.Param("property")}
	data, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	msg, err := h.nc.Request(agentcontrol.PropertyGetSubject(namespace, peerID), data, busRequestTimeout)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	rep := message.PropertyReply{}
	if err := json.Unmarshal(msg.Data, &rep); err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) handleSetProperty(c echo.Context) error {
	namespace := c.Param("namespace")
	peerID := c.Param("id")

	if ok, err := h.ensurePeerExists(c, namespace, peerID); !ok {
		return err
	}

	req := &message.PropertySetRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, err)
	}
	// The URL names the property, the body only carries the value.
	req.Property = c.Param("property")

	data, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	msg, err := h.nc.Request(agentcontrol.PropertySetSubject(namespace, peerID), data, busRequestTimeout)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	rep := message.PropertyReply{}
	if err := json.Unmarshal(msg.Data, &rep); err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) handleMouseMove(c echo.Context) error {
	namespace := c.Param("namespace")
	peerID := c.Param("id")

	if ok, err := h.ensurePeerExists(c, namespace, peerID); !ok {
		return err
	}

	req := &message.MouseMoveRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, err)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	msg, err := h.nc.Request(agentcontrol.MouseMoveSubject(namespace, peerID), data, busRequestTimeout)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	rep := message.MouseMoveReply{}
	if err := json.Unmarshal(msg.Data, &rep); err != nil {
		return c.JSON(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) ensurePeerExists(c echo.Context, namespace, peerID string) (bool, error) {
	_, err := h.store.Peers().FindByNamespaceAndPeerID(namespace, peerID)
	if err != nil && err == storage.ErrNotFound {
		return false, c.JSON(http.StatusNotFound, err)
	} else if err != nil {
		return false, c.JSON(http.StatusInternalServerError, err)
	}
	return true, nil
}
