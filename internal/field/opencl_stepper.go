//go:build opencl

package field

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

const advanceKernelSource = `__kernel void advance_depth(
    const int count,
    const float mult,
    const float decay,
    __global float* depth,
    __global const float* speed,
    __global float* boost)
{
    int idx = get_global_id(0);
    if (idx >= count) {
        return;
    }
    float b = boost[idx];
    depth[idx] -= speed[idx] * mult * b;
    if (b > 1.0f) {
        boost[idx] = b * decay;
    }
}`

// openCLStepper runs the depth advance on an OpenCL device. Host particle
// state is uploaded every frame since bursts and respawns mutate it on the
// CPU.
type openCLStepper struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	depthBuf   *cl.MemObject
	speedBuf   *cl.MemObject
	boostBuf   *cl.MemObject
	capacity   int
	deviceName string

	depth []float32
	speed []float32
	boost []float32
}

// NewOpenCLStepper opens the first GPU (or, failing that, CPU) OpenCL
// device and compiles the advance kernel.
func NewOpenCLStepper() (Stepper, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	s := &openCLStepper{context: context, deviceName: device.Name()}
	s.queue, err = context.CreateCommandQueue(device, 0)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	s.program, err = context.CreateProgramWithSource([]string{advanceKernelSource})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	s.kernel, err = s.program.CreateKernel("advance_depth")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	return s, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// ensureCapacity grows the device buffers to hold n particles.
func (s *openCLStepper) ensureCapacity(n int) error {
	if n <= s.capacity {
		return nil
	}
	s.releaseBuffers()
	byteSize := n * int(unsafe.Sizeof(float32(0)))
	var err error
	if s.depthBuf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
		return fmt.Errorf("allocating depth buffer: %w", err)
	}
	if s.speedBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, byteSize); err != nil {
		s.releaseBuffers()
		return fmt.Errorf("allocating speed buffer: %w", err)
	}
	if s.boostBuf, err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
		s.releaseBuffers()
		return fmt.Errorf("allocating boost buffer: %w", err)
	}
	s.depth = make([]float32, n)
	s.speed = make([]float32, n)
	s.boost = make([]float32, n)
	s.capacity = n
	return nil
}

func (s *openCLStepper) Advance(ps []Particle, mult, decay float64) error {
	n := len(ps)
	if n == 0 {
		return nil
	}
	if err := s.ensureCapacity(n); err != nil {
		return err
	}
	for i := range ps {
		s.depth[i] = float32(ps[i].Z)
		s.speed[i] = float32(ps[i].Speed)
		s.boost[i] = float32(ps[i].Boost)
	}
	depth, speed, boost := s.depth[:n], s.speed[:n], s.boost[:n]
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.depthBuf, false, 0, depth, nil); err != nil {
		return fmt.Errorf("writing depth buffer: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.speedBuf, false, 0, speed, nil); err != nil {
		return fmt.Errorf("writing speed buffer: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.boostBuf, false, 0, boost, nil); err != nil {
		return fmt.Errorf("writing boost buffer: %w", err)
	}
	if err := s.kernel.SetArgs(
		int32(n),
		float32(mult),
		float32(decay),
		s.depthBuf,
		s.speedBuf,
		s.boostBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, []int{n}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.depthBuf, true, 0, depth, nil); err != nil {
		return fmt.Errorf("reading depth buffer: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.boostBuf, true, 0, boost, nil); err != nil {
		return fmt.Errorf("reading boost buffer: %w", err)
	}
	for i := range ps {
		ps[i].Z = float64(depth[i])
		ps[i].Boost = float64(boost[i])
	}
	return nil
}

func (s *openCLStepper) Name() string { return "opencl:" + s.deviceName }

func (s *openCLStepper) releaseBuffers() {
	if s.boostBuf != nil {
		s.boostBuf.Release()
		s.boostBuf = nil
	}
	if s.speedBuf != nil {
		s.speedBuf.Release()
		s.speedBuf = nil
	}
	if s.depthBuf != nil {
		s.depthBuf.Release()
		s.depthBuf = nil
	}
	s.capacity = 0
}

func (s *openCLStepper) Close() {
	s.releaseBuffers()
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}
