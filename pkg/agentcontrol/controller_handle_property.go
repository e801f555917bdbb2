package agentcontrol

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/message"
)

// Subscribe attaches the controller to the command bus subjects. Property
// requests are queue-subscribed so multiple controller instances share the
// load.
func (ctrl *Controller) Subscribe() error {
	if ctrl.nc == nil {
		return fmt.Errorf("controller: connection to nats is missing")
	}

	if _, err := ctrl.nc.QueueSubscribe(SubjectBase+".*.peer.*.property.set", SubjectBase+".queue.propertyset", func(msg *nats.Msg) {
		if err := ctrl.handlePropertySetRequest(msg); err != nil {
			log.Error("controller failed to handle property set request: ", err.Error())
		}
	}); err != nil {
		return err
	}

	if _, err := ctrl.nc.QueueSubscribe(SubjectBase+".*.peer.*.property.get", SubjectBase+".queue.propertyget", func(msg *nats.Msg) {
		if err := ctrl.handlePropertyGetRequest(msg); err != nil {
			log.Error("controller failed to handle property get request: ", err.Error())
		}
	}); err != nil {
		return err
	}

	if _, err := ctrl.nc.QueueSubscribe(SubjectBase+".*.peer.*.mousemove", SubjectBase+".queue.mousemove", func(msg *nats.Msg) {
		if err := ctrl.handleMouseMoveRequest(msg); err != nil {
			log.Error("controller failed to handle mouse move request: ", err.Error())
		}
	}); err != nil {
		return err
	}

	return nil
}

// splitPeerSubject extracts namespace and peer ID from a subject of the form
// pcbridge.agentcontrol.v1.<namespace>.peer.<peerID>.<op>...
func splitPeerSubject(subject string) (namespace, peerID string, ok bool) {
	stripped := strings.TrimPrefix(subject, SubjectBase+".")
	s := strings.Split(stripped, ".")
	if len(s) < 4 || s[1] != "peer" {
		return "", "", false
	}
	return s[0], s[2], true
}

func (ctrl *Controller) handlePropertySetRequest(msg *nats.Msg) error {
	namespace, peerID, ok := splitPeerSubject(msg.Subject)
	if !ok {
		return fmt.Errorf("controller: unexpected subject '%s'", msg.Subject)
	}

	req := message.PropertySetRequest{}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return ctrl.replyPropertyError(msg.Reply, ErrReasonTechnicalException, err.Error())
	}

	sess, err := ctrl.Session(namespace, peerID)
	if err != nil {
		return ctrl.replyCommandError(msg.Reply, err)
	}

	prop, found := sess.PropertyByName(req.Property)
	if !found {
		return ctrl.replyPropertyError(msg.Reply, ErrReasonNoSuchProperty,
			fmt.Sprintf("peer has no property '%s'", req.Property))
	}

	if err := prop.Set(req.Value); err != nil {
		return ctrl.replyPropertyError(msg.Reply, ErrReasonTechnicalException, err.Error())
	}

	return ctrl.replyMessage(msg.Reply, &message.PropertyReply{
		Status:   message.ReplyStatusSuccess,
		Property: prop.Name,
		Value:    prop.Get(),
	})
}

func (ctrl *Controller) handlePropertyGetRequest(msg *nats.Msg) error {
	namespace, peerID, ok := splitPeerSubject(msg.Subject)
	if !ok {
		return fmt.Errorf("controller: unexpected subject '%s'", msg.Subject)
	}

	req := message.PropertyGetRequest{}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return ctrl.replyPropertyError(msg.Reply, ErrReasonTechnicalException, err.Error())
	}

	sess, err := ctrl.Session(namespace, peerID)
	if err != nil {
		return ctrl.replyCommandError(msg.Reply, err)
	}

	prop, found := sess.PropertyByName(req.Property)
	if !found {
		return ctrl.replyPropertyError(msg.Reply, ErrReasonNoSuchProperty,
			fmt.Sprintf("peer has no property '%s'", req.Property))
	}

	return ctrl.replyMessage(msg.Reply, &message.PropertyReply{
		Status:   message.ReplyStatusSuccess,
		Property: prop.Name,
		Value:    prop.Get(),
	})
}

func (ctrl *Controller) handleMouseMoveRequest(msg *nats.Msg) error {
	namespace, peerID, ok := splitPeerSubject(msg.Subject)
	if !ok {
		return fmt.Errorf("controller: unexpected subject '%s'", msg.Subject)
	}

	req := message.MouseMoveRequest{}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return ctrl.replyMessage(msg.Reply, &message.MouseMoveReply{
			Status:       message.ReplyStatusError,
			ErrorReason:  ErrReasonTechnicalException,
			ErrorDetails: err.Error(),
		})
	}

	sess, err := ctrl.Session(namespace, peerID)
	if err != nil {
		return ctrl.replyCommandError(msg.Reply, err)
	}

	if err := sess.MoveMouse(req.X, req.Y); err != nil {
		return ctrl.replyMessage(msg.Reply, &message.MouseMoveReply{
			Status:       message.ReplyStatusError,
			ErrorReason:  ErrReasonTechnicalException,
			ErrorDetails: err.Error(),
		})
	}

	return ctrl.replyMessage(msg.Reply, &message.MouseMoveReply{
		Status: message.ReplyStatusSuccess,
	})
}

func (ctrl *Controller) replyCommandError(replyTo string, err error) error {
	if e, ok := err.(*CommandError); ok {
		return ctrl.replyPropertyError(replyTo, e.Reason, e.Details)
	}
	return ctrl.replyPropertyError(replyTo, ErrReasonTechnicalException, err.Error())
}

func (ctrl *Controller) replyPropertyError(replyTo, reason string, details interface{}) error {
	return ctrl.replyMessage(replyTo, &message.PropertyReply{
		Status:       message.ReplyStatusError,
		ErrorReason:  reason,
		ErrorDetails: details,
	})
}

func (ctrl *Controller) replyMessage(replyTo string, rep interface{}) error {
	if replyTo == "" {
		return nil
	}

	data, err := json.Marshal(rep)
	if err != nil {
		return err
	}

	return ctrl.nc.Publish(replyTo, data)
}
