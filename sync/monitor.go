package sync

import (
	"context"
	"log"
	"sync"
	"time"
)

// Drainer is what the monitor triggers on reconnect.
type Drainer interface {
	Drain(ctx context.Context)
}

// ProbeFunc checks whether the remote endpoint is currently reachable.
type ProbeFunc func(ctx context.Context) bool

// Monitor tracks online/offline transitions. The offline-to-online
// transition triggers exactly one queue drain; duplicate online signals
// are no-ops, and the queue's own in-flight flag debounces the rest.
type Monitor struct {
	queue    Drainer
	probe    ProbeFunc
	interval time.Duration

	mu       sync.Mutex
	online   bool
	running  bool
	stopChan chan struct{}
}

// NewMonitor starts out assuming the endpoint is reachable; the first
// probe corrects that if it is not.
func NewMonitor(queue Drainer, probe ProbeFunc, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{
		queue:    queue,
		probe:    probe,
		interval: interval,
		online:   true,
		stopChan: make(chan struct{}),
	}
}

// IsOnline reports the last observed connectivity state.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline records a connectivity signal. Only the offline-to-online
// transition kicks off a background drain.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	wasOnline := m.online
	m.online = online
	m.mu.Unlock()

	if online == wasOnline {
		return
	}

	if online {
		log.Println("[Connectivity] Back online, draining sync queue")
		go m.queue.Drain(context.Background())
	} else {
		log.Println("[Connectivity] Went offline, queueing mutations")
	}
}

// Start begins the background probe loop. The stop channel is recreated
// here so a monitor can be restarted after Stop.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running || m.probe == nil {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopChan = make(chan struct{})
	stop := m.stopChan
	m.mu.Unlock()

	log.Println("[Connectivity] Starting connectivity monitor")

	go m.run(stop)
}

// Stop shuts down the probe loop.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Println("[Connectivity] Stopping connectivity monitor")
	close(m.stopChan)
	m.running = false
}

func (m *Monitor) run(stop chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Probe immediately on start
	m.SetOnline(m.probe(context.Background()))

	for {
		select {
		case <-ticker.C:
			m.SetOnline(m.probe(context.Background()))
		case <-stop:
			return
		}
	}
}
