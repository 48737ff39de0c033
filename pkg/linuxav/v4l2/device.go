//go:build linux

package v4l2

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"
)

const (
	sysfsVideoDir = "/sys/class/video4linux"
	byIDDir       = "/dev/v4l/by-id"
)

// ErrDeviceNotFound is returned when no capture node matches an identifier.
var ErrDeviceNotFound = errors.New("v4l2 device not found")

// FindDevices lists the video capture nodes on the system. Nodes that cannot be
// opened or do not capture video are skipped.
func FindDevices() ([]DeviceInfo, error) {
	entries, err := os.ReadDir(sysfsVideoDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []DeviceInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", sysfsVideoDir, err)
	}

	devices := []DeviceInfo{}
	for _, entry := range entries {
		name := entry.Name()
		devicePath := "/dev/" + name

		caps, err := queryCapability(devicePath)
		if err != nil {
			continue
		}

		effective := caps.capabilities
		if effective&v4l2CapDeviceCaps != 0 {
			effective = caps.deviceCaps
		}
		if effective&v4l2CapVideoCapture == 0 {
			continue
		}

		index := readSysfsInt(filepath.Join(sysfsVideoDir, name, "index"))
		stableID := findStableID(name, index)
		if stableID == "" {
			busInfo := cstr(caps.busInfo[:])
			if strings.HasPrefix(busInfo, "usb-") {
				stableID = fmt.Sprintf("%s-video-index%d", busInfo, index)
			} else {
				stableID = fmt.Sprintf("platform-%s-video-index%d", busInfo, index)
			}
		}

		devices = append(devices, DeviceInfo{
			DevicePath: devicePath,
			DeviceName: cstr(caps.card[:]),
			DeviceID:   stableID,
			Caps:       effective,
		})
	}

	return devices, nil
}

// GetDevicePathByID returns the node of the device with the given stable ID.
func GetDevicePathByID(deviceID string) (string, error) {
	devices, err := FindDevices()
	if err != nil {
		return "", err
	}
	for _, device := range devices {
		if device.DeviceID == deviceID {
			return device.DevicePath, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrDeviceNotFound, deviceID)
}

func queryCapability(devicePath string) (*v4l2Capability, error) {
	fd, err := openDevice(devicePath)
	if err != nil {
		return nil, err
	}
	defer closeDevice(fd)

	caps := &v4l2Capability{}
	if err := ioctl(fd, vidiocQuerycap, unsafe.Pointer(caps)); err != nil {
		return nil, err
	}
	return caps, nil
}

// findStableID looks for the by-id symlink that points at deviceName.
func findStableID(deviceName string, index int) string {
	entries, err := os.ReadDir(byIDDir)
	if err != nil {
		return ""
	}

	suffix := fmt.Sprintf("-video-index%d", index)
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink == 0 || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		target, err := os.Readlink(filepath.Join(byIDDir, entry.Name()))
		if err != nil {
			continue
		}
		if filepath.Base(target) == deviceName {
			return entry.Name()
		}
	}
	return ""
}

func readSysfsInt(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	val, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	return val
}
