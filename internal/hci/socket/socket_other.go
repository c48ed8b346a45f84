//go:build !linux

package socket

import "errors"

// ErrUnsupported is returned by every function on platforms other than
// Linux, which is the only OS exposing AF_BLUETOOTH raw HCI sockets.
var ErrUnsupported = errors.New("hci socket: raw HCI sockets are only supported on linux")

type Socket struct{}

func Open(devID int) (*Socket, error) { return nil, ErrUnsupported }

func (s *Socket) Read(p []byte) (int, error)  { return 0, ErrUnsupported }
func (s *Socket) Write(p []byte) (int, error) { return 0, ErrUnsupported }
func (s *Socket) Close() error                { return ErrUnsupported }

func Up(devID int) error   { return ErrUnsupported }
func Down(devID int) error { return ErrUnsupported }
