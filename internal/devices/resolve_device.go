package devices

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/smazurov/streamcaps/internal/capability"
)

// v4lDir holds the udev-maintained stable symlinks.
var v4lDir = "/dev/v4l"

// ResolveDevicePath maps a device identity to an openable node. Paths under
// /dev are returned as is; stable IDs are looked up in by-id, then by-path.
func ResolveDevicePath(deviceID string) (string, error) {
	if deviceID == "" {
		return "", capability.UnknownDevice(deviceID)
	}
	if strings.HasPrefix(deviceID, "/dev/") {
		return deviceID, nil
	}

	if strings.HasPrefix(deviceID, "usb-") {
		path := filepath.Join(v4lDir, "by-id", deviceID)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if strings.HasPrefix(deviceID, "platform-") || strings.HasPrefix(deviceID, "usb-") || strings.HasPrefix(deviceID, "pci-") {
		path := filepath.Join(v4lDir, "by-path", deviceID)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", capability.UnknownDevice(deviceID)
}

// ResolvePath maps an identity to a node using the stable symlinks first and
// live enumeration second, which also covers synthesized IDs.
func (p *Provider) ResolvePath(deviceID string) (string, error) {
	if path, err := ResolveDevicePath(deviceID); err == nil {
		return path, nil
	}
	d, err := p.Lookup(deviceID)
	if err != nil {
		return "", err
	}
	return d.DevicePath, nil
}
