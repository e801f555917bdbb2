package message

import (
	"bytes"
	"encoding/json"
	"time"
)

//
// ReplyStatus definition
//

type ReplyStatus int

const (
	ReplyStatusSuccess ReplyStatus = iota
	ReplyStatusError
)

func (t ReplyStatus) String() string {
	return replyStatusToString[t]
}

var replyStatusToString = map[ReplyStatus]string{
	ReplyStatusSuccess: "SUCCESS",
	ReplyStatusError:   "ERROR",
}

var stringToReplyStatus = map[string]ReplyStatus{
	"SUCCESS": ReplyStatusSuccess,
	"ERROR":   ReplyStatusError,
}

func (t ReplyStatus) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(replyStatusToString[t])
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

func (t *ReplyStatus) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if err != nil {
		return err
	}
	*t = stringToReplyStatus[s]
	return nil
}

//
// Property requests and replies, exchanged over the command bus
//

type PropertySetRequest struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type PropertyGetRequest struct {
	Property string `json:"property"`
}

type PropertyReply struct {
	Status       ReplyStatus `json:"status"`
	Property     string      `json:"property,omitempty"`
	Value        interface{} `json:"value,omitempty"`
	ErrorReason  string      `json:"error_reason,omitempty"`
	ErrorDetails interface{} `json:"error_details,omitempty"`
}

type MouseMoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MouseMoveReply struct {
	Status       ReplyStatus `json:"status"`
	ErrorReason  string      `json:"error_reason,omitempty"`
	ErrorDetails interface{} `json:"error_details,omitempty"`
}

//
// Event messages, published to observers
//

type EventMessage struct {
	PublicationID string      `json:"publication_id"`
	PeerID        string      `json:"peer_id"`
	Topic         string      `json:"topic"`
	Timestamp     time.Time   `json:"timestamp"`
	Details       interface{} `json:"details"`
}
