package device

import (
	"go.bug.st/serial"
)

// OpenSerial is the production Opener, backed by the platform serial stack.
func OpenSerial(name string, baud int) (Port, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	return port, nil
}
