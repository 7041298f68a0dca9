package search

import (
	_ "embed"
	"strconv"
	"strings"
)

// MaxData is the size of the GPU kernel's output buffer: one hit counter
// plus room for 128 candidates at 8 uint32 words each.
const MaxData = 1 + 1024

// IterationsPerThread is the number of candidate seeds each GPU work item
// walks per kernel launch before the host reads results back.
const IterationsPerThread = 1024

// MaxCandidatesPerLaunch is the number of candidates the host can actually
// recover from one launch before the output buffer's counter slot would
// overflow.
const MaxCandidatesPerLaunch = (MaxData - 1) / 8

//go:embed kernel.cl
var kernelSource string

// KernelSource returns the OpenCL kernel source with ITERATIONS_PER_THREAD
// and MAX_DATA substituted, ready to hand to clCreateProgramWithSource.
func KernelSource() string {
	r := strings.NewReplacer(
		"ITERATIONS_PER_THREAD", strconv.Itoa(IterationsPerThread),
		"MAX_DATA", strconv.Itoa(MaxData),
	)
	return r.Replace(kernelSource)
}
