//go:build !opencl
// +build !opencl

package main

import (
	"github.com/rs/zerolog"

	"github.com/Asylian21/zcashvanity/internal/search"
)

// buildDevices runs the CPU fallback backend. Without the opencl build tag
// there is no GPU enumeration to perform, so -d is accepted but unused: a
// single goroutine-parallel CPUDevice spans all cores regardless of how
// many device specifiers were passed.
func buildDevices(logger *zerolog.Logger, specs []string, rs *search.RangeSet) ([]search.Device, error) {
	logger.Info().Msg("Available devices: cpu (software fallback, build without -tags opencl)")
	return []search.Device{search.NewCPUDevice(0, rs, 0)}, nil
}
