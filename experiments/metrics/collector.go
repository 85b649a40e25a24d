package metrics

import (
	"time"
)

// RunConfig describes one grid run in an experiment.
type RunConfig struct {
	ID           int
	Rows         int
	Cols         int
	Rounds       int
	Noise        float64
	MutationRate float64
	Seed         uint64
	Generations  int
}

type GenerationMetric struct {
	Generation int
	Counts     []int // Cells per strategy after the generation
	Changed    int   // Cells whose strategy differs from the previous generation
	Duration   time.Duration
}

type RunMetric struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	Generations int  // Generations actually advanced
	Stable      bool // Stopped because no cell changed
}

type Collector interface {
	Start()
	Complete(generation int, counts []int, changed int) GenerationMetric
}

type collector struct {
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) Complete(generation int, counts []int, changed int) GenerationMetric {
	return GenerationMetric{
		Generation: generation,
		Counts:     append([]int(nil), counts...),
		Changed:    changed,
		Duration:   time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start() {}
func (m *dummyCollector) Complete(generation int, counts []int, changed int) GenerationMetric {
	return GenerationMetric{Generation: generation, Changed: changed}
}
