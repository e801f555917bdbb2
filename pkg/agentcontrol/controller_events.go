package agentcontrol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/message"
	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/transport"
	"github.com/Jonathan-Adapt/pcbridge/pkg/model"
)

type propertyChangeDetails struct {
	Property string      `json:"property"`
	Value    interface{} `json:"value"`
}

type peerStatusDetails struct {
	Status    string `json:"status"`
	SessionID int32  `json:"session_id"`
}

// handlePropertyChange fans a session's change notification out to the bus
// and the event audit store.
func (ctrl *Controller) handlePropertyChange(peer model.Peer, property string, value interface{}) {
	details := &propertyChangeDetails{
		Property: property,
		Value:    value,
	}

	if err := ctrl.publishEvent(peer, "propertychange", details); err != nil {
		log.Errorf("controller could not publish property change: %v", err)
	}

	ctrl.recordEvent(peer, "propertychange", details)
}

// handlePeerStatus records transport status flips on the session record and
// publishes them for observers.
func (ctrl *Controller) handlePeerStatus(peer model.Peer, sessionID int32, status transport.Status) {
	record, err := ctrl.store.Sessions().FindByID(sessionID)
	if err != nil {
		log.Errorf("controller could not find session record %d: %v", sessionID, err)
	} else {
		record.Connected = status == transport.StatusConnected
		if err := ctrl.store.Sessions().Update(record); err != nil {
			log.Errorf("controller failed to update session record: %v", err)
		}
	}

	details := &peerStatusDetails{
		Status:    status.String(),
		SessionID: sessionID,
	}

	if err := ctrl.publishEvent(peer, "peerstatus", details); err != nil {
		log.Errorf("controller could not publish peer status: %v", err)
	}

	ctrl.recordEvent(peer, "peerstatus", details)
}

// touchSession stamps the session record with the time the last command went
// out to the agent.
func (ctrl *Controller) touchSession(sessionID int32) {
	record, err := ctrl.store.Sessions().FindByID(sessionID)
	if err != nil {
		log.Errorf("controller could not find session record %d: %v", sessionID, err)
		return
	}

	record.LastCommandAt = time.Now().Round(time.Second).UTC()
	if err := ctrl.store.Sessions().Update(record); err != nil {
		log.Errorf("controller failed to update session record: %v", err)
	}
}

func (ctrl *Controller) publishEvent(peer model.Peer, topic string, details interface{}) error {
	if ctrl.nc == nil {
		return nil
	}

	msg := message.EventMessage{
		PublicationID: uuid.NewString(),
		PeerID:        peer.PeerID,
		Topic:         topic,
		Timestamp:     time.Now().Round(time.Second).UTC(),
		Details:       details,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ctrl.nc.Publish(EventsSubject(peer.Namespace, topic), data)
}

func (ctrl *Controller) recordEvent(peer model.Peer, topic string, details interface{}) {
	data, err := json.Marshal(details)
	if err != nil {
		log.Errorf("controller could not marshal event details: %v", err)
		return
	}

	event := model.Event{
		Namespace: peer.Namespace,
		PeerID:    peer.PeerID,
		Topic:     topic,
		Timestamp: time.Now().Round(time.Second).UTC(),
		Details:   string(data),
	}

	if err := ctrl.store.Events().Create(&event); err != nil {
		log.Errorf("controller failed to record event: %v", err)
	}
}
