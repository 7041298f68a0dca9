//go:build opencl
// +build opencl

package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Asylian21/zcashvanity/internal/search"
)

// buildDevices enumerates every OpenCL platform/device pair, prints the
// startup banner the original tool prints (one "Available devices on
// platform <platform name>:" block per platform, "i:j name" per device), and returns a
// Device for each pair selected by specs (or every pair, if specs is
// empty).
func buildDevices(logger *zerolog.Logger, specs []string, rs *search.RangeSet) ([]search.Device, error) {
	infos, err := search.OpenCLPlatformDevices()
	if err != nil {
		return nil, err
	}

	selected := map[string]bool{}
	for _, s := range specs {
		selected[s] = true
	}
	all := len(selected) == 0

	var devices []search.Device
	lastPlatform := -1
	for _, info := range infos {
		if info.PlatformIdx != lastPlatform {
			logger.Info().Msgf("Available devices on platform %s:", info.PlatformName)
			lastPlatform = info.PlatformIdx
		}
		key := fmt.Sprintf("%d:%d", info.PlatformIdx, info.DeviceIdx)
		logger.Info().Msgf("  %s %s", key, info.Name)

		if all || selected[key] {
			devices = append(devices, search.NewOpenCLDevice(len(devices), info, rs))
		}
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("zcashvanity: no OpenCL devices matched %s", strings.Join(specs, ", "))
	}
	return devices, nil
}
