package observability

// References:
// https://github.com/DataDog/dd-trace-go/blob/main/profiler/profiler.go#L118

import (
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/multierr"

	"github.com/ftcontainers/xstl/lib/infra"
)

type ProfileType int8

const (
	CPUProfile ProfileType = iota
	MemProfile
)

func (typ ProfileType) String() string {
	switch typ {
	case CPUProfile:
		return "cpu"
	case MemProfile:
		return "heap"
	default:
	}
	return "unknown"
}

// StartProfile starts writing the profile into path. The returned stop
// finishes the profile and closes the file. The heap profile is a
// snapshot taken at stop.
func StartProfile(typ ProfileType, path string) (stop func() error, err error) {
	if typ != CPUProfile && typ != MemProfile {
		return nil, infra.NewErrorStack("[observability] unknown profile type")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[observability] create "+typ.String()+" profile")
	}
	if typ == CPUProfile {
		if err = pprof.StartCPUProfile(f); err != nil {
			return nil, multierr.Append(infra.WrapErrorStack(err), f.Close())
		}
		return func() error {
			pprof.StopCPUProfile()
			return f.Close()
		}, nil
	}
	return func() error {
		runtime.GC()
		return multierr.Append(pprof.WriteHeapProfile(f), f.Close())
	}, nil
}
