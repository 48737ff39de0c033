//go:build linux

// Package hotplug reports kernel device add and remove events by listening on
// the NETLINK_KOBJECT_UEVENT socket. It does not use cgo or libudev.
package hotplug

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"syscall"
)

// Actions reported by the kernel.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionChange = "change"
)

// SubsystemVideo4Linux is the subsystem of V4L2 device nodes.
const SubsystemVideo4Linux = "video4linux"

// Event is one kernel uevent.
type Event struct {
	Action    string
	KObj      string // kernel object path, /devices/...
	Subsystem string
	DevName   string // node name relative to /dev, e.g. "video0"
	Env       map[string]string
}

// DeviceNode returns the /dev path of the event's node, or "" when the event has none.
func (e Event) DeviceNode() string {
	if e.DevName == "" {
		return ""
	}
	return "/dev/" + e.DevName
}

const netlinkKobjectUEvent = 15

// Monitor receives uevents from the kernel broadcast group.
type Monitor struct {
	fd int

	mu         sync.RWMutex
	subsystems map[string]bool
}

// NewMonitor opens the netlink socket.
func NewMonitor() (*Monitor, error) {
	fd, err := syscall.Socket(syscall.AF_NETLINK, syscall.SOCK_DGRAM|syscall.SOCK_CLOEXEC, netlinkKobjectUEvent)
	if err != nil {
		return nil, err
	}

	addr := &syscall.SockaddrNetlink{Family: syscall.AF_NETLINK, Groups: 1}
	if err := syscall.Bind(fd, addr); err != nil {
		syscall.Close(fd)
		return nil, err
	}

	// Bounded reads let Run notice cancellation.
	tv := syscall.Timeval{Sec: 1}
	if err := syscall.SetsockoptTimeval(fd, syscall.SOL_SOCKET, syscall.SO_RCVTIMEO, &tv); err != nil {
		syscall.Close(fd)
		return nil, err
	}

	return &Monitor{fd: fd, subsystems: make(map[string]bool)}, nil
}

// FilterSubsystem restricts Run to events from subsystem. Without filters every event passes.
func (m *Monitor) FilterSubsystem(subsystem string) {
	m.mu.Lock()
	m.subsystems[subsystem] = true
	m.mu.Unlock()
}

func (m *Monitor) accepts(subsystem string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subsystems) == 0 || m.subsystems[subsystem]
}

// Close releases the socket.
func (m *Monitor) Close() error {
	return syscall.Close(m.fd)
}

// Run delivers events to out until ctx is done or the socket fails.
// out is closed when Run returns.
func (m *Monitor) Run(ctx context.Context, out chan<- Event) error {
	defer close(out)

	buf := make([]byte, 8192)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, _, err := syscall.Recvfrom(m.fd, buf, 0)
		if err != nil {
			if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EINTR) {
				continue
			}
			return err
		}

		event, ok := ParseUEvent(buf[:n])
		if !ok || !m.accepts(event.Subsystem) {
			continue
		}

		select {
		case out <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ParseUEvent decodes "ACTION@KOBJ\0KEY=VALUE\0...". Messages re-broadcast by
// udevd carry a binary "libudev" header which is skipped.
func ParseUEvent(data []byte) (Event, bool) {
	if bytes.HasPrefix(data, []byte("libudev")) {
		data = skipUdevHeader(data)
	}

	parts := bytes.Split(data, []byte{0})
	action, kobj, ok := bytes.Cut(parts[0], []byte("@"))
	if !ok || len(action) == 0 {
		return Event{}, false
	}

	event := Event{
		Action: string(action),
		KObj:   string(kobj),
		Env:    make(map[string]string),
	}
	for _, part := range parts[1:] {
		key, value, found := bytes.Cut(part, []byte("="))
		if !found || len(key) == 0 {
			continue
		}
		event.Env[string(key)] = string(value)
	}
	event.Subsystem = event.Env["SUBSYSTEM"]
	event.DevName = event.Env["DEVNAME"]

	return event, true
}

func skipUdevHeader(data []byte) []byte {
	for i := 0; i < len(data)-1; i++ {
		if data[i] != 0 {
			continue
		}
		rest := data[i+1:]
		end := bytes.IndexByte(rest, 0)
		at := bytes.IndexByte(rest, '@')
		if at > 0 && at < 20 && (end < 0 || at < end) {
			return rest
		}
	}
	return data
}
