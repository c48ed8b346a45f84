//go:build linux

// Package socket provides an optional Linux raw HCI user-channel
// transport, letting bthost drive a real Bluetooth controller instead of
// an in-memory hci.Ring consumer. It implements io.ReadWriteCloser over
// an AF_BLUETOOTH/BTPROTO_HCI socket bound to HCI_CHANNEL_USER, which
// hands the whole H4 byte stream to user space exclusively.
package socket

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

func ioR(t, nr, size uintptr) uintptr { return (2 << 30) | (t << 8) | nr | (size << 16) }
func ioW(t, nr, size uintptr) uintptr { return (1 << 30) | (t << 8) | nr | (size << 16) }

func ioctl(fd, op, arg uintptr) error {
	if _, _, ep := unix.Syscall(unix.SYS_IOCTL, fd, op, arg); ep != 0 {
		return ep
	}
	return nil
}

const (
	ioctlSize     = 4
	hciMaxDevices = 16
	typHCI        = 72 // 'H'
)

var (
	hciUpDevice      = ioW(typHCI, 201, ioctlSize) // HCIDEVUP
	hciDownDevice    = ioW(typHCI, 202, ioctlSize)  // HCIDEVDOWN
	hciGetDeviceList = ioR(typHCI, 210, ioctlSize)  // HCIGETDEVLIST
)

type devListRequest struct {
	devNum     uint16
	devRequest [hciMaxDevices]struct {
		id  uint16
		opt uint32
	}
}

// Socket is a raw HCI user-channel transport: Write sends H4-framed bytes
// to the controller, Read receives them, exactly mirroring what
// hci.Ring/hci.Dispatcher already move in-process for the no-hardware path.
type Socket struct {
	fd     int
	closed chan struct{}
	rmu    sync.Mutex
	wmu    sync.Mutex
}

// Open binds a raw HCI user-channel socket to devID, or to the first
// device that accepts an exclusive bind when devID is -1.
func Open(devID int) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW, unix.BTPROTO_HCI)
	if err != nil {
		return nil, fmt.Errorf("hci socket: create: %w", err)
	}

	if devID != -1 {
		return bind(fd, devID)
	}

	req := devListRequest{devNum: hciMaxDevices}
	if err := ioctl(uintptr(fd), hciGetDeviceList, uintptr(unsafe.Pointer(&req))); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("hci socket: get device list: %w", err)
	}
	var lastErr error
	for id := 0; id < int(req.devNum); id++ {
		s, err := bind(fd, id)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}
	unix.Close(fd)
	return nil, fmt.Errorf("hci socket: no usable device: %w", lastErr)
}

func bind(fd, id int) (*Socket, error) {
	// HCI_CHANNEL_USER requires the device to be down at bind time, and
	// takes exclusive ownership away from the kernel's own HCI stack.
	if err := ioctl(uintptr(fd), hciDownDevice, uintptr(id)); err != nil {
		return nil, fmt.Errorf("hci socket: down hci%d: %w", id, err)
	}
	sa := &unix.SockaddrHCI{Dev: uint16(id), Channel: unix.HCI_CHANNEL_USER}
	if err := unix.Bind(fd, sa); err != nil {
		return nil, fmt.Errorf("hci socket: bind hci%d: %w", id, err)
	}
	return &Socket{fd: fd, closed: make(chan struct{})}, nil
}

func (s *Socket) Read(p []byte) (int, error) {
	select {
	case <-s.closed:
		return 0, unix.EBADF
	default:
	}
	s.rmu.Lock()
	defer s.rmu.Unlock()
	n, err := unix.Read(s.fd, p)
	if err != nil {
		return n, fmt.Errorf("hci socket: read: %w", err)
	}
	return n, nil
}

func (s *Socket) Write(p []byte) (int, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	n, err := unix.Write(s.fd, p)
	if err != nil {
		return n, fmt.Errorf("hci socket: write: %w", err)
	}
	return n, nil
}

func (s *Socket) Close() error {
	close(s.closed)
	// HCI_Reset, best-effort: leave the controller in a clean state for
	// whatever owns the device next.
	_, _ = s.Write([]byte{0x01, 0x03, 0x0C, 0x00})
	s.rmu.Lock()
	defer s.rmu.Unlock()
	if err := unix.Close(s.fd); err != nil {
		return fmt.Errorf("hci socket: close: %w", err)
	}
	return nil
}

// Up brings HCI device devID up.
func Up(devID int) error {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW, unix.BTPROTO_HCI)
	if err != nil {
		return fmt.Errorf("hci socket: create: %w", err)
	}
	defer unix.Close(fd)
	if err := ioctl(uintptr(fd), hciUpDevice, uintptr(devID)); err != nil {
		return fmt.Errorf("hci socket: up hci%d: %w", devID, err)
	}
	return nil
}

// Down brings HCI device devID down.
func Down(devID int) error {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW, unix.BTPROTO_HCI)
	if err != nil {
		return fmt.Errorf("hci socket: create: %w", err)
	}
	defer unix.Close(fd)
	if err := ioctl(uintptr(fd), hciDownDevice, uintptr(devID)); err != nil {
		return fmt.Errorf("hci socket: down hci%d: %w", devID, err)
	}
	return nil
}
