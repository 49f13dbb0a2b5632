package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceSession = "session"
	SourceManual  = "manual"

	SyncOK           = "ok"
	SyncPartial      = "partial"
	SyncUnauthorized = "unauthorized"
	SyncFailed       = "failed"
)

type Manager struct {
	// counters
	CounterWorkoutsRecorded     *prometheus.CounterVec
	CounterXPGranted            prometheus.Counter
	CounterLevelUps             prometheus.Counter
	CounterAchievementsUnlocked prometheus.Counter
	CounterSyncRuns             *prometheus.CounterVec
	CounterWorkoutsUploaded     prometheus.Counter
	CounterUploadFailures       prometheus.Counter
	CounterWorkoutsPulled       prometheus.Counter
	CounterWorkoutsDropped      prometheus.Counter
	CounterForcedLogouts        prometheus.Counter

	// gauges
	GaugeHistorySize prometheus.Gauge

	// histograms
	HistSyncDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("liftlog", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("liftlog", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterWorkoutsRecorded := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_recorded",
		Help:      "The total number of workouts added to history",
	}, []string{"source"})
	counterXPGranted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "xp_granted",
		Help:      "The total XP granted",
	})
	counterLevelUps := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "level_ups",
		Help:      "The total number of levels gained",
	})
	counterAchievementsUnlocked := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "achievements_unlocked",
		Help:      "The total number of achievements unlocked",
	})
	counterSyncRuns := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sync_runs",
		Help:      "The total number of sync passes by outcome",
	}, []string{"result"})
	counterWorkoutsUploaded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_uploaded",
		Help:      "The total number of workouts uploaded to the remote store",
	})
	counterUploadFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "upload_failures",
		Help:      "The total number of failed remote writes",
	})
	counterWorkoutsPulled := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_pulled",
		Help:      "The total number of remote-only workouts merged locally",
	})
	counterWorkoutsDropped := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_dropped",
		Help:      "The total number of synced workouts removed because the remote no longer has them",
	})
	counterForcedLogouts := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "forced_logouts",
		Help:      "The total number of logouts caused by 401 responses",
	})

	gaugeHistorySize := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "history_size",
		Help:      "Current number of workouts in local history",
	})

	histSyncDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			Name:      "sync_duration_seconds",
			Help:      "Total duration of a sync pass in seconds",
		},
	)

	return &Manager{
		CounterWorkoutsRecorded:     counterWorkoutsRecorded,
		CounterXPGranted:            counterXPGranted,
		CounterLevelUps:             counterLevelUps,
		CounterAchievementsUnlocked: counterAchievementsUnlocked,
		CounterSyncRuns:             counterSyncRuns,
		CounterWorkoutsUploaded:     counterWorkoutsUploaded,
		CounterUploadFailures:       counterUploadFailures,
		CounterWorkoutsPulled:       counterWorkoutsPulled,
		CounterWorkoutsDropped:      counterWorkoutsDropped,
		CounterForcedLogouts:        counterForcedLogouts,
		GaugeHistorySize:            gaugeHistorySize,
		HistSyncDuration:            histSyncDuration,
	}
}

// WriteTextfile writes every metric in g to path in the node_exporter
// textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
