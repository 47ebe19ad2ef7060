// Package profilers sets up optional profiling for the programs, configured by flags.
//
// Importing it installs the flags -prof, -cpu_profile and -mem_profile.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagHTTPPort   = flag.Int("prof", -1, "If set, serves the pprof HTTP handlers on localhost at the given port.")
	flagCPUProfile = flag.String("cpu_profile", "", "Write a CPU profile to `file`.")
	flagMemProfile = flag.String("mem_profile", "", "Write a heap profile to `file` when the program ends.")
)

// Profiler holds the profiles started by Setup. Stop must be called before the program ends.
type Profiler struct {
	ctx      context.Context
	cpuFile  *os.File
	httpAddr string
}

// Setup starts the HTTP profiler (-prof) and the CPU profile (-cpu_profile), if configured.
// ctx is used by Stop to know when to quit if the HTTP profiler is running.
func Setup(ctx context.Context) (*Profiler, error) {
	p := &Profiler{ctx: ctx}
	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			return nil, errors.Wrap(err, "could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "could not start CPU profile")
		}
		p.cpuFile = f
	}
	if *flagHTTPPort >= 0 {
		p.httpAddr = fmt.Sprintf("localhost:%d", *flagHTTPPort)
		fmt.Printf("Profiler serving on http://%s/debug/pprof\n", p.httpAddr)
		fmt.Printf("- The program is kept alive at the end, interrupt it (Ctrl+C) to exit.\n")
		go func() {
			klog.Fatal(http.ListenAndServe(p.httpAddr, nil))
		}()
	}
	return p, nil
}

// Stop the CPU profile, write the heap profile, and if the HTTP profiler is on, wait for ctx to be done.
func (p *Profiler) Stop() {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			klog.Errorf("Failed to close CPU profile: %+v", err)
		}
		p.cpuFile = nil
	}
	if *flagMemProfile != "" {
		if err := writeHeapProfile(*flagMemProfile); err != nil {
			klog.Errorf("Failed to write heap profile: %+v", err)
		}
	}
	if p.httpAddr == "" || p.ctx.Err() != nil {
		return
	}
	fmt.Printf("- Program finished: kept alive with profiler at http://%s/debug/pprof\n", p.httpAddr)
	<-p.ctx.Done()
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create heap profile")
	}
	runtime.GC()
	if err = pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "could not write heap profile")
	}
	return f.Close()
}
