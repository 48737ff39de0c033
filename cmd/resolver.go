// Package cmd holds the offline subcommands of the streamcaps binary.
package cmd

import (
	"github.com/smazurov/streamcaps/internal/capability"
	"github.com/smazurov/streamcaps/internal/devices"
	"github.com/smazurov/streamcaps/internal/encoders"
)

// deviceProvider answers device queries for the subcommands. Tests replace it.
var deviceProvider = func() capability.DeviceProvider {
	return devices.NewProvider(devices.NewDetector())
}

// loadResolver builds a resolver over the catalog at path, or the built-in
// catalog when path is empty, and the local capture devices.
func loadResolver(path string) (*capability.Resolver, *encoders.Catalog, error) {
	catalog := encoders.Default()
	if path != "" {
		c, err := encoders.Load(path)
		if err != nil {
			return nil, nil, err
		}
		catalog = c
	}
	return capability.NewResolver(catalog.Video(), catalog.Audio(), deviceProvider()), catalog, nil
}
