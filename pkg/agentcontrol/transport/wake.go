package transport

import (
	"net"

	"github.com/pkg/errors"
)

// buildMagicPacket assembles a wake-on-LAN magic packet: six 0xFF bytes
// followed by the target MAC address repeated sixteen times.
func buildMagicPacket(mac string) ([]byte, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return nil, errors.Wrap(err, "transport: invalid MAC address")
	}
	if len(hw) != 6 {
		return nil, errors.Errorf("transport: unsupported MAC address length %d", len(hw))
	}

	packet := make([]byte, 0, 6+16*6)
	for i := 0; i < 6; i++ {
		packet = append(packet, 0xFF)
	}
	for i := 0; i < 16; i++ {
		packet = append(packet, hw...)
	}

	return packet, nil
}

func sendMagicPacket(mac string) error {
	packet, err := buildMagicPacket(mac)
	if err != nil {
		return err
	}

	conn, err := net.Dial("udp", "255.255.255.255:9")
	if err != nil {
		return errors.Wrap(err, "transport: could not open UDP socket for wake")
	}
	defer conn.Close()

	if _, err := conn.Write(packet); err != nil {
		return errors.Wrap(err, "transport: could not send magic packet")
	}

	return nil
}
