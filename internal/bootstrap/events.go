package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/ChronoFarm_Go/internal/config"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/metrics"
)

// InitializeEventSystem creates the event bus. Listener failures are always
// counted in metrics and, when EVENT_DEAD_LETTER_PATH is set, also appended
// to a dead-letter file. The returned closer may be nil.
func InitializeEventSystem(cfg *config.Config, opts ...event.BusOption) (*event.Bus, io.Closer, error) {
	sinks := event.MultiSink{metrics.FailureCounter{}}

	var closer io.Closer
	if cfg.EventDeadLetterPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), DirPermission); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
		}
		dlw, err := event.NewDeadLetterWriter(cfg.EventDeadLetterPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedOpenDeadLetter, err)
		}
		sinks = append(sinks, dlw)
		closer = dlw
	}

	bus := event.NewBus(append([]event.BusOption{event.WithFailureSink(sinks)}, opts...)...)

	slog.Info(LogMsgEventSystemInitialized, "deadletter_path", cfg.EventDeadLetterPath)
	return bus, closer, nil
}
