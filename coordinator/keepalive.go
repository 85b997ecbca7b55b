package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/dictate/logger"
	"github.com/kbukum/dictate/messaging"
	"github.com/kbukum/dictate/metrics"
)

// Keepalive keeps a suspendable execution context alive for the duration
// of a recording. Start and Stop are idempotent.
type Keepalive interface {
	Start()
	Stop()
}

// DefaultKeepaliveInterval is shorter than the typical idle-suspension
// window of the hosting runtime (30s), with margin.
const DefaultKeepaliveInterval = 20 * time.Second

// Pinger is a ticker-based Keepalive that posts ping messages to a bus
// target.
type Pinger struct {
	bus      messaging.Bus
	target   string
	interval time.Duration
	log      *logger.Logger
	metrics  *metrics.Metrics

	mu   sync.Mutex
	stop chan struct{}
}

// NewPinger creates a keepalive that pings target every interval.
func NewPinger(bus messaging.Bus, target string, interval time.Duration, log *logger.Logger, m *metrics.Metrics) *Pinger {
	if interval <= 0 {
		interval = DefaultKeepaliveInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Pinger{
		bus:      bus,
		target:   target,
		interval: interval,
		log:      log.WithComponent("keepalive"),
		metrics:  m,
	}
}

// Start begins pinging. A second Start while running is a no-op.
func (p *Pinger) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	go p.run(p.stop)
}

// Stop halts pinging. Safe to call when not running.
func (p *Pinger) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == nil {
		return
	}
	close(p.stop)
	p.stop = nil
}

func (p *Pinger) run(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			err := p.bus.Post(context.Background(), messaging.Message{
				Type:   messaging.TypePing,
				Target: p.target,
			})
			if err != nil {
				p.log.Debug("ping not delivered", logger.ErrorFields("ping", err))
				continue
			}
			p.metrics.KeepalivePing()
		}
	}
}

// NopKeepalive is a Keepalive that does nothing. Used when the hosting
// runtime needs no suspension workaround, and in tests.
type NopKeepalive struct{}

func (NopKeepalive) Start() {}
func (NopKeepalive) Stop()  {}
