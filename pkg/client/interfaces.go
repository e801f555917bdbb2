package client

// Interface is a host-side client for driving peer sessions over the
// command bus.
type Interface interface {
	SetProperty(namespace, peerID, property, value string) (interface{}, error)
	GetProperty(namespace, peerID, property string) (interface{}, error)
	MoveMouse(namespace, peerID string, x, y int) error
}
