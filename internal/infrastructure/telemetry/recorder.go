package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"buyback/internal/domain/entity"
)

const namespace = "buyback"

// Recorder считает созданные заявки и переходы статусов.
type Recorder struct {
	created     *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_created_total",
			Help:      "Buy requests created, by device category.",
		}, []string{"category"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Buy request status transitions, by target status and actor.",
		}, []string{"status", "actor"}),
	}

	for _, c := range []prometheus.Collector{r.created, r.transitions} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registerer.Register: %w", err)
		}
	}

	return r, nil
}

func (r *Recorder) RequestCreated(category entity.DeviceCategory) {
	r.created.WithLabelValues(category.String()).Inc()
}

func (r *Recorder) StatusChanged(status entity.BuyRequestStatus, actor string) {
	if actor == "" {
		actor = "system"
	}

	r.transitions.WithLabelValues(status.String(), actor).Inc()
}
