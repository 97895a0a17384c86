package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/linkupapp/linkup/internal/client/cache"
)

// DefaultPollInterval matches the background refresh cadence of the
// notification badge.
const DefaultPollInterval = 30 * time.Second

// Poller periodically refreshes the unread notification counter. Read
// failures are swallowed like every other read; the next tick retries.
type Poller struct {
	service  *Service
	interval time.Duration
	onUpdate func(count int)
	logger   *slog.Logger
}

// NewPoller creates an unread-count poller. interval <= 0 selects
// DefaultPollInterval. onUpdate is invoked with each refreshed count.
func NewPoller(service *Service, interval time.Duration, onUpdate func(int), logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		service:  service,
		interval: interval,
		onUpdate: onUpdate,
		logger:   logger,
	}
}

// Run polls until ctx is canceled. The first refresh happens immediately.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	// Force a fresh fetch; the badge must not be served from a
	// still-fresh cache entry for the whole interval.
	p.service.cache.Invalidate(cache.UnreadCount())
	count, err := p.service.UnreadCount(ctx)
	if err != nil {
		p.logger.Debug("unread count refresh failed", "error", err)
		return
	}
	if p.onUpdate != nil {
		p.onUpdate(count)
	}
}
