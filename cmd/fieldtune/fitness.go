package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/field"
	"github.com/pthm-cable/driftfield/host"
	"github.com/pthm-cable/driftfield/telemetry"
)

// nullSurface measures the field without rasterizing it.
type nullSurface struct{ w, h float64 }

func (s nullSurface) Size() (float64, float64) { return s.w, s.h }
func (nullSurface) PixelRatio() float64        { return 1 }
func (nullSurface) SetScale(float64)           {}
func (nullSurface) Clear()                     {}

func (nullSurface) FillCircle(x, y, radius float64, paint field.Paint) {}

func (nullSurface) StrokeLine(x1, y1, x2, y2, width float64, paint field.Paint) {}

// FitnessEvaluator runs headless fields and scores their link density.
type FitnessEvaluator struct {
	params     *ParamVector
	frames     int
	seeds      []int64
	baseConfig *config.Config
	target     float64 // mean links per particle

	mu          sync.Mutex
	lastDensity float64
	lastFrame   float64 // mean frame time in microseconds
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames int, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		frames:     frames,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// LastDensity returns the links per particle from the most recent evaluation.
func (fe *FitnessEvaluator) LastDensity() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastDensity
}

// LastFrameMicros returns the mean frame time from the most recent evaluation.
func (fe *FitnessEvaluator) LastFrameMicros() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastFrame
}

// runResult holds the results from a single seeded run.
type runResult struct {
	density    float64
	frameMicro float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the squared distance of the mean link density from the target.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(i int, seed int64) {
			defer wg.Done()
			results[i] = fe.run(&cfg, seed)
		}(i, seed)
	}
	wg.Wait()

	var density, frame float64
	for _, r := range results {
		density += r.density
		frame += r.frameMicro
	}
	density /= float64(len(results))
	frame /= float64(len(results))

	fe.mu.Lock()
	fe.lastDensity = density
	fe.lastFrame = frame
	fe.mu.Unlock()

	d := density - fe.target
	return d * d
}

// run steps one field for the configured number of frames.
func (fe *FitnessEvaluator) run(cfg *config.Config, seed int64) runResult {
	perf := telemetry.NewPerfCollector(fe.frames)
	stats := telemetry.NewCollector(fe.frames)
	loop := host.NewFrameLoop()

	opts := cfg.FieldOptions()
	opts.Link = true
	opts.Rand = rand.New(rand.NewSource(seed))
	opts.Observer = &telemetry.Recorder{Perf: perf, Stats: stats}

	surface := nullSurface{w: float64(cfg.Screen.Width), h: float64(cfg.Screen.Height)}
	e := field.Start(field.Host{Surface: surface, Scheduler: loop}, opts)
	defer e.Stop()

	for i := 0; i < fe.frames; i++ {
		loop.Tick()
	}

	window := stats.Flush()
	if window.Particles == 0 {
		return runResult{density: math.Inf(1)}
	}
	return runResult{
		density:    window.LinksMean / float64(window.Particles),
		frameMicro: float64(perf.Stats().AvgFrame.Microseconds()),
	}
}
