//go:build opencl
// +build opencl

package search

/*
#cgo linux LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL
#cgo windows LDFLAGS: -lOpenCL

#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif

#include <stdlib.h>
*/
import "C"

import (
	"crypto/rand"
	"fmt"
	"math/bits"
	"sync/atomic"
	"time"
	"unsafe"
)

// OpenCLDevice drives a single OpenCL-capable accelerator directly against
// the C API (cgo), with no intermediate Go OpenCL wrapper: no Go module
// wrapping OpenCL carries a real dependency worth reusing here, and
// tron-gpu.go's cgo binding straight to <CL/cl.h> does the same thing.
// Host-loop shape (seed/write/launch/read/verify/report) is
// ported from original_source/src/device.rs's vanity_device, retargeted at
// this module's Sprout range-search kernel (kernel.cl).
type OpenCLDevice struct {
	id       int
	platform C.cl_platform_id
	device   C.cl_device_id
	ranges   *RangeSet
	prefixes []string
}

// OpenCLPlatformDevices enumerates every (platform, device) pair visible to
// the OpenCL runtime, for the CLI's device-enumeration banner and -d flag.
func OpenCLPlatformDevices() ([]OpenCLDeviceInfo, error) {
	var numPlatforms C.cl_uint
	if C.clGetPlatformIDs(0, nil, &numPlatforms) != C.CL_SUCCESS || numPlatforms == 0 {
		return nil, fmt.Errorf("search: no OpenCL platforms found")
	}
	platforms := make([]C.cl_platform_id, numPlatforms)
	if C.clGetPlatformIDs(numPlatforms, &platforms[0], nil) != C.CL_SUCCESS {
		return nil, fmt.Errorf("search: clGetPlatformIDs failed")
	}

	var infos []OpenCLDeviceInfo
	for pi, p := range platforms {
		platformName := platformInfoName(p)

		var numDevices C.cl_uint
		if C.clGetDeviceIDs(p, C.CL_DEVICE_TYPE_ALL, 0, nil, &numDevices) != C.CL_SUCCESS || numDevices == 0 {
			continue
		}
		devices := make([]C.cl_device_id, numDevices)
		if C.clGetDeviceIDs(p, C.CL_DEVICE_TYPE_ALL, numDevices, &devices[0], nil) != C.CL_SUCCESS {
			continue
		}
		for di, d := range devices {
			infos = append(infos, OpenCLDeviceInfo{
				platform:     p,
				device:       d,
				PlatformIdx:  pi,
				DeviceIdx:    di,
				PlatformName: platformName,
				Name:         deviceName(d),
			})
		}
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("search: no OpenCL devices found")
	}
	return infos, nil
}

// OpenCLDeviceInfo names one enumerated (platform, device) pair, keyed by
// the "<platform>:<device>" index string the CLI's -d flag accepts.
type OpenCLDeviceInfo struct {
	platform C.cl_platform_id
	device   C.cl_device_id

	PlatformIdx  int
	DeviceIdx    int
	PlatformName string
	Name         string
}

func platformInfoName(p C.cl_platform_id) string {
	var size C.size_t
	if C.clGetPlatformInfo(p, C.CL_PLATFORM_NAME, 0, nil, &size) != C.CL_SUCCESS || size == 0 {
		return "unknown platform"
	}
	buf := make([]byte, size)
	if C.clGetPlatformInfo(p, C.CL_PLATFORM_NAME, size, unsafe.Pointer(&buf[0]), nil) != C.CL_SUCCESS {
		return "unknown platform"
	}
	return string(buf[:size-1])
}

func deviceName(d C.cl_device_id) string {
	var size C.size_t
	if C.clGetDeviceInfo(d, C.CL_DEVICE_NAME, 0, nil, &size) != C.CL_SUCCESS || size == 0 {
		return "unknown device"
	}
	buf := make([]byte, size)
	if C.clGetDeviceInfo(d, C.CL_DEVICE_NAME, size, unsafe.Pointer(&buf[0]), nil) != C.CL_SUCCESS {
		return "unknown device"
	}
	return string(buf[:size-1])
}

// NewOpenCLDevice builds a Device for one enumerated platform/device pair.
func NewOpenCLDevice(id int, info OpenCLDeviceInfo, rs *RangeSet) *OpenCLDevice {
	return &OpenCLDevice{id: id, platform: info.platform, device: info.device, ranges: rs, prefixes: rs.PrefixesSorted}
}

// Run implements Device. It owns its OpenCL context/queue/program/buffers
// for the lifetime of the call and releases them on return.
func (g *OpenCLDevice) Run(cancel *atomic.Bool, reportCh chan<- Report, matchCh chan<- Match) {
	var ret C.cl_int

	context := C.clCreateContext(nil, 1, &g.device, nil, nil, &ret)
	if ret != C.CL_SUCCESS {
		panic("search: clCreateContext failed")
	}
	defer C.clReleaseContext(context)

	queue := C.clCreateCommandQueue(context, g.device, 0, &ret)
	if ret != C.CL_SUCCESS {
		panic("search: clCreateCommandQueue failed")
	}
	defer C.clReleaseCommandQueue(queue)

	kernelSrc := KernelSource()
	src := C.CString(kernelSrc)
	defer C.free(unsafe.Pointer(src))
	srcLen := C.size_t(len(kernelSrc))

	program := C.clCreateProgramWithSource(context, 1, &src, &srcLen, &ret)
	if ret != C.CL_SUCCESS {
		panic("search: clCreateProgramWithSource failed")
	}
	defer C.clReleaseProgram(program)

	if C.clBuildProgram(program, 1, &g.device, nil, nil, nil) != C.CL_SUCCESS {
		var logSize C.size_t
		C.clGetProgramBuildInfo(program, g.device, C.CL_PROGRAM_BUILD_LOG, 0, nil, &logSize)
		buildLog := make([]byte, logSize)
		C.clGetProgramBuildInfo(program, g.device, C.CL_PROGRAM_BUILD_LOG, logSize, unsafe.Pointer(&buildLog[0]), nil)
		panic("search: OpenCL build failed: " + string(buildLog))
	}

	kName := C.CString("compress")
	defer C.free(unsafe.Pointer(kName))
	kernel := C.clCreateKernel(program, kName, &ret)
	if ret != C.CL_SUCCESS {
		panic("search: clCreateKernel failed")
	}
	defer C.clReleaseKernel(kernel)

	patternCount := C.uint32_t(g.ranges.RangeCount())
	patternCountLog2 := C.uint32_t(bits.Len32(uint32(g.ranges.RangeCount()) - 1))
	if g.ranges.RangeCount() == 0 {
		patternCountLog2 = 0
	}

	devSeed := C.clCreateBuffer(context, C.CL_MEM_READ_ONLY, 32, nil, &ret)
	defer C.clReleaseMemObject(devSeed)
	devPatterns := C.clCreateBuffer(context, C.CL_MEM_READ_ONLY|C.CL_MEM_COPY_HOST_PTR,
		C.size_t(len(g.ranges.Words))*8, unsafe.Pointer(&g.ranges.Words[0]), &ret)
	defer C.clReleaseMemObject(devPatterns)
	devOut := C.clCreateBuffer(context, C.CL_MEM_READ_WRITE, C.size_t(MaxData)*4, nil, &ret)
	defer C.clReleaseMemObject(devOut)

	var workGroupSize C.size_t
	C.clGetKernelWorkGroupInfo(kernel, g.device, C.CL_KERNEL_WORK_GROUP_SIZE, C.size_t(unsafe.Sizeof(workGroupSize)), unsafe.Pointer(&workGroupSize), nil)
	localSize := [1]C.size_t{workGroupSize}

	var computeUnits C.cl_uint
	C.clGetDeviceInfo(g.device, C.CL_DEVICE_MAX_COMPUTE_UNITS, C.size_t(unsafe.Sizeof(computeUnits)), unsafe.Pointer(&computeUnits), nil)
	globalSize := [1]C.size_t{workGroupSize * C.size_t(computeUnits) * 4}
	if globalSize[0] >= (1 << 28) {
		panic("search: OpenCL global work size would collide with the reserved a_sk nibble")
	}

	var littleEndian C.cl_bool
	C.clGetDeviceInfo(g.device, C.CL_DEVICE_ENDIAN_LITTLE, C.size_t(unsafe.Sizeof(littleEndian)), unsafe.Pointer(&littleEndian), nil)

	// data holds the previous launch's already-complete results (processed
	// below while the current launch runs); devData is the in-flight read
	// target for the launch just submitted. Swapped each iteration so the
	// host never blocks on a read before it has useful host-side work
	// (base58 reverification) to overlap with it, mirroring
	// original_source/src/device.rs's vanity_device loop.
	data := make([]uint32, MaxData)
	devData := make([]uint32, MaxData)

	for !cancel.Load() {
		start := time.Now()

		var seed [32]byte
		if _, err := rand.Read(seed[:]); err != nil {
			panic("search: CSPRNG read failed: " + err.Error())
		}
		if littleEndian != 0 {
			seed[3] = 0xc0 | (seed[3] & 0x0f)
		} else {
			seed[0] = 0xc0 | (seed[0] & 0x0f)
		}

		C.clEnqueueWriteBuffer(queue, devSeed, C.CL_FALSE, 0, 32, unsafe.Pointer(&seed[0]), 0, nil, nil)

		C.clSetKernelArg(kernel, 0, C.size_t(unsafe.Sizeof(devSeed)), unsafe.Pointer(&devSeed))
		C.clSetKernelArg(kernel, 1, C.size_t(unsafe.Sizeof(devPatterns)), unsafe.Pointer(&devPatterns))
		C.clSetKernelArg(kernel, 2, C.size_t(unsafe.Sizeof(patternCount)), unsafe.Pointer(&patternCount))
		C.clSetKernelArg(kernel, 3, C.size_t(unsafe.Sizeof(patternCountLog2)), unsafe.Pointer(&patternCountLog2))
		C.clSetKernelArg(kernel, 4, C.size_t(unsafe.Sizeof(devOut)), unsafe.Pointer(&devOut))

		if C.clEnqueueNDRangeKernel(queue, kernel, 1, nil, &globalSize[0], &localSize[0], 0, nil, nil) != C.CL_SUCCESS {
			panic("search: clEnqueueNDRangeKernel failed")
		}

		var readEvent C.cl_event
		C.clEnqueueReadBuffer(queue, devOut, C.CL_FALSE, 0, C.size_t(MaxData)*4, unsafe.Pointer(&devData[0]), 0, nil, &readEvent)

		if cancel.Load() {
			C.clReleaseEvent(readEvent)
			break
		}

		// Process the previous launch's results while this launch's kernel
		// and readback are still in flight on the device.
		if data[0] != 0 {
			count := int(data[0])
			if count > MaxCandidatesPerLaunch {
				count = MaxCandidatesPerLaunch
			}
			for c := 0; c < count; c++ {
				var words [8]uint32
				copy(words[:], data[1+8*c:1+8*c+8])
				if match, ok := verifyCandidate(words, g.prefixes); ok {
					matchCh <- match
				}
			}
		}

		C.clFlush(queue)
		for {
			var status C.cl_int
			C.clGetEventInfo(readEvent, C.CL_EVENT_COMMAND_EXECUTION_STATUS, C.size_t(unsafe.Sizeof(status)), unsafe.Pointer(&status), nil)
			if status == C.CL_COMPLETE {
				break
			}
			time.Sleep(time.Millisecond)
		}
		C.clReleaseEvent(readEvent)

		data, devData = devData, data
		devData[0] = 0
		// Blocking: the write must complete before this stack variable goes
		// out of scope on the next loop turn.
		zero := C.uint32_t(0)
		C.clEnqueueWriteBuffer(queue, devOut, C.CL_TRUE, 0, 4, unsafe.Pointer(&zero), 0, nil, nil)

		elapsed := time.Since(start).Seconds()
		rate := float64(IterationsPerThread) * float64(globalSize[0]) / elapsed
		reportCh <- Report{WorkerID: g.id, Rate: rate}
	}
}
