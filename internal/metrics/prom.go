package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/exam-scheduler/internal/scheduler"
)

// Recorder tracks schedule generation and validation runs.
type Recorder struct {
	gatherer    prometheus.Gatherer
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	placements  *prometheus.CounterVec
	validations *prometheus.CounterVec
	conflicts   *prometheus.CounterVec
}

// NewRecorder registers the scheduler metrics on reg. A nil reg uses a fresh
// registry. Collectors that are already registered are reused.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_schedule_generations_total",
		Help: "Total number of schedule generation runs",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "exam_schedule_generation_seconds",
		Help:    "Wall time of a schedule generation run",
		Buckets: prometheus.DefBuckets,
	})
	placements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_placements_total",
		Help: "Exams placed or left unplaced by the engine",
	}, []string{"result"})
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_schedule_validations_total",
		Help: "Total number of validation runs by status",
	}, []string{"status"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_schedule_conflicts_total",
		Help: "Conflicts reported by the validator",
	}, []string{"kind", "severity"})

	var err error
	if generations, err = register(reg, generations); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if placements, err = register(reg, placements); err != nil {
		return nil, err
	}
	if validations, err = register(reg, validations); err != nil {
		return nil, err
	}
	if conflicts, err = register(reg, conflicts); err != nil {
		return nil, err
	}
	return &Recorder{
		gatherer:    reg,
		generations: generations,
		duration:    duration,
		placements:  placements,
		validations: validations,
		conflicts:   conflicts,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordGeneration counts a generation run. A nil res records a failure.
func (r *Recorder) RecordGeneration(res *scheduler.Result, err error) {
	if err != nil || res == nil {
		r.generations.WithLabelValues("error").Inc()
		return
	}
	r.generations.WithLabelValues("ok").Inc()
	r.duration.Observe(res.Elapsed.Seconds())
	placed := 0
	if res.Schedule != nil {
		placed = len(res.Schedule.Placed())
	}
	r.placements.WithLabelValues("placed").Add(float64(placed))
	r.placements.WithLabelValues("unplaced").Add(float64(len(res.Unplaced)))
}

func (r *Recorder) RecordValidation(report *scheduler.Report) {
	if report == nil {
		return
	}
	r.validations.WithLabelValues(string(report.Status)).Inc()
	for _, c := range report.Conflicts {
		r.conflicts.WithLabelValues(string(c.Kind), c.Severity.String()).Inc()
	}
}

// Handler exposes the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
