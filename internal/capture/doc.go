// Package capture exposes the runtime controls (focus, zoom) of an open
// capture device.
//
// A Camera owns the device node and serializes every control access. The
// ControlSettings it hands out are live views: they read through to the
// device on each call and stop working once the camera is closed.
package capture
