package api

import (
	"encoding/json"
	"strings"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/labstack/echo"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol"
	"github.com/Jonathan-Adapt/pcbridge/pkg/api/resource"
)

func (h *Handler) realtimeEventsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, _, _, err := ws.UpgradeHTTP(c.Request(), c.Response())
		if err != nil {
			log.Error("api: failed to upgrade to websocket: ", err)
			return nil
		}
		defer conn.Close()

		sub, err := h.nc.Subscribe(agentcontrol.SubjectBase+".*.events.*", func(msg *nats.Msg) {

			// Get namespace and topic from the NATS subject
			strippedSubject := strings.TrimPrefix(msg.Subject, agentcontrol.SubjectBase+".")
			s := strings.Split(strippedSubject, ".")
			if len(s) != 3 {
				return
			}
			namespace := s[0]
			topic := s[2]

			// Parse the message and send it
			var data interface{}
			if err := json.Unmarshal(msg.Data, &data); err == nil {
				event := resource.NewRealtimeEvent(namespace, topic, data)
				out, _ := json.Marshal(event)
				if err := wsutil.WriteServerMessage(conn, ws.OpText, out); err != nil {
					log.Error("api: failed to send realtime event: ", err)
				}
			}

		})
		if err != nil {
			log.Error("api: failed to subscribe to events: ", err)
			return nil
		}
		defer sub.Unsubscribe()

		// Block until the client goes away. We never expect inbound data on
		// this socket; a read error means the connection is done.
		for {
			if _, _, err := wsutil.ReadClientData(conn); err != nil {
				log.Debug("api: realtime events client disconnected: ", err)
				return nil
			}
		}
	}
}
