package profiling

import (
	"os"
	"runtime/pprof"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonedit/errors"
)

// CobraProfiler adds --timing and --cpu-profile to a command tree.
type CobraProfiler struct {
	timing  bool
	cpuPath string
	cpuFile *os.File
	rec     *Recorder
}

// NewCobraProfiler returns an idle profiler.
func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{}
}

// AddFlags registers the persistent flags and hooks on cmd.
func (p *CobraProfiler) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print a timing summary to stderr on exit")
	cmd.PersistentFlags().StringVar(&p.cpuPath, "cpu-profile", "", "Write a CPU profile to this file")
	cmd.PersistentPreRunE = p.PreRun
	cmd.PersistentPostRun = p.PostRun
}

// PreRun starts whatever the flags asked for.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, _ []string) error {
	if p.timing {
		p.rec = Enable()
	}
	if p.cpuPath == "" {
		return nil
	}
	f, err := os.Create(p.cpuPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "could not create CPU profile")
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return errors.Wrap(err, errors.ErrCodeInternal, "could not start CPU profile")
	}
	p.cpuFile = f
	return nil
}

// PostRun stops the CPU profile and prints the timing summary.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, _ []string) {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			logrus.WithError(err).Warn("Closing CPU profile failed")
		}
		p.cpuFile = nil
	}
	if p.rec != nil {
		p.rec.Summarize(cmd.ErrOrStderr())
		Disable()
		p.rec = nil
	}
}
