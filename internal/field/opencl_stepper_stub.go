//go:build !opencl

package field

import "errors"

// ErrOpenCLUnavailable is returned by NewOpenCLStepper in builds without
// the opencl tag.
var ErrOpenCLUnavailable = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")

// NewOpenCLStepper always fails in this build.
func NewOpenCLStepper() (Stepper, error) {
	return nil, ErrOpenCLUnavailable
}
