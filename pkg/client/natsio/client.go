package natsio

import (
	"encoding/json"
	"time"

	nats "github.com/nats-io/nats.go"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol"
	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/message"
	"github.com/Jonathan-Adapt/pcbridge/pkg/client"
	"github.com/pkg/errors"
)

type Config struct {
	url            string
	defaultTimeout time.Duration
}

func NewConfig(url string) *Config {
	return &Config{
		url:            url,
		defaultTimeout: 16 * time.Second,
	}
}

type natsClient struct {
	cfg *Config
	nc  *nats.Conn
}

func New(cfg *Config) (client.Interface, error) {
	nc, err := nats.Connect(cfg.url)
	if err != nil {
		return nil, err
	}
	return &natsClient{
		cfg: cfg,
		nc:  nc,
	}, nil
}

func (c *natsClient) SetProperty(namespace, peerID, property, value string) (interface{}, error) {
	req := message.PropertySetRequest{Property: property, Value: value}
	rep := message.PropertyReply{}

	subj := agentcontrol.PropertySetSubject(namespace, peerID)
	if err := c.request(subj, req, &rep); err != nil {
		return nil, err
	}

	if rep.Status == message.ReplyStatusError {
		return nil, errors.Errorf("property set failed: %s", rep.ErrorReason)
	}

	return rep.Value, nil
}

func (c *natsClient) GetProperty(namespace, peerID, property string) (interface{}, error) {
	req := message.PropertyGetRequest{Property: property}
	rep := message.PropertyReply{}

	subj := agentcontrol.PropertyGetSubject(namespace, peerID)
	if err := c.request(subj, req, &rep); err != nil {
		return nil, err
	}

	if rep.Status == message.ReplyStatusError {
		return nil, errors.Errorf("property get failed: %s", rep.ErrorReason)
	}

	return rep.Value, nil
}

func (c *natsClient) MoveMouse(namespace, peerID string, x, y int) error {
	req := message.MouseMoveRequest{X: x, Y: y}
	rep := message.MouseMoveReply{}

	subj := agentcontrol.MouseMoveSubject(namespace, peerID)
	if err := c.request(subj, req, &rep); err != nil {
		return err
	}

	if rep.Status == message.ReplyStatusError {
		return errors.Errorf("mouse move failed: %s", rep.ErrorReason)
	}

	return nil
}

func (c *natsClient) request(subj string, req interface{}, rep interface{}) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	msg, err := c.nc.Request(subj, data, c.cfg.defaultTimeout)
	if err != nil {
		return err
	}

	return json.Unmarshal(msg.Data, rep)
}
