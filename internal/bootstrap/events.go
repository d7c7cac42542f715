package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/quizdojo/reward-engine/internal/event"
	"github.com/quizdojo/reward-engine/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus and wires the
// metrics collector to it. Business metrics are derived entirely from
// published events, so services never touch the metrics package directly.
func InitializeEventSystem() (event.Bus, error) {
	eventBus := event.NewMemoryBus()
	eventBus.OnHandlerError = func(eventType event.Type) {
		metrics.EventHandlerErrors.WithLabelValues(string(eventType)).Inc()
	}

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized)
	return eventBus, nil
}
