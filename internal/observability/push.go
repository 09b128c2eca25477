package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the run metrics to a Prometheus Pushgateway, replacing the
// previous push for the same job.
func (m *Metrics) Push(url, job string) error {
	if err := push.New(url, job).Gatherer(m.Registry).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
