package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrProfilerCooldown is returned when a capture was requested too soon
	ErrProfilerCooldown = errors.New("capture on cooldown")

	// ErrProfilerBusy is returned while a capture is running
	ErrProfilerBusy = errors.New("already profiling")
)

// Profiler captures a CPU profile and an execution trace when the game stalls
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	profilesDir     string
	captureDuration time.Duration
	log             *zap.Logger

	// done is signalled after each capture finishes; tests wait on it
	done chan string
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, log *zap.Logger) (*Profiler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create profiles dir %s: %w", dir, err)
	}
	return &Profiler{
		captureCooldown: 10 * time.Second,
		profilesDir:     dir,
		captureDuration: 5 * time.Second,
		log:             log,
		done:            make(chan string, 1),
	}, nil
}

// SetCapture changes the capture length and cooldown
func (p *Profiler) SetCapture(duration, cooldown time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.captureDuration = duration
	p.captureCooldown = cooldown
}

// CaptureProfile starts a capture in the background and returns at once
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return ErrProfilerBusy
	}
	if since := time.Since(p.lastCaptureTime); !p.lastCaptureTime.IsZero() && since < p.captureCooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrProfilerCooldown, since.Round(time.Millisecond))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("stall-%s-%s", p.lastCaptureTime.Format("20060102-150405"), reason)
	duration := p.captureDuration

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
			select {
			case p.done <- baseName:
			default:
			}
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName, duration); err != nil {
				p.log.Warn("cpu profile failed", zap.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName, duration); err != nil {
				p.log.Warn("trace failed", zap.Error(err))
			}
		}()
		wg.Wait()

		p.analyzeProfile(baseName)
	}()

	return nil
}

func (p *Profiler) captureCPUProfile(baseName string, duration time.Duration) error {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	time.Sleep(duration)
	pprof.StopCPUProfile()

	p.log.Info("cpu profile saved", zap.String("path", path))
	return nil
}

func (p *Profiler) captureTrace(baseName string, duration time.Duration) error {
	path := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(duration)
	trace.Stop()

	p.log.Info("trace saved", zap.String("path", path))
	return nil
}

// analyzeProfile logs where the capture went and the heap at that moment
func (p *Profiler) analyzeProfile(baseName string) {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.log.Warn("could not analyze profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.log.Info("profile captured",
		zap.String("profile", path),
		zap.Int64("bytes", info.Size()),
		zap.String("view", "go tool pprof -http=:8080 "+path),
		zap.Uint64("alloc_kb", m.Alloc/1024),
		zap.Uint64("sys_kb", m.Sys/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_objects", m.HeapObjects),
	)
}

// IsProfiling returns whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// Done delivers the base name of each finished capture
func (p *Profiler) Done() <-chan string {
	return p.done
}
