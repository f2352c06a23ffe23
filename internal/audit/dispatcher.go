package audit

import (
	"log"
	"sync"
)

type Event struct {
	MasterID uint   `json:"master_id"`
	UserID   *uint  `json:"user_id,omitempty"`
	Action   string `json:"action"`
	Entity   string `json:"entity"`
	EntityID *uint  `json:"entity_id,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

// Sink receives dispatched events on the worker goroutine.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	queue chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			if err := s.Log(ev); err != nil {
				log.Printf("[AUDIT] action=%s entity=%s error=%v", ev.Action, ev.Entity, err)
			}
		}
	}
}

// Dispatch never blocks the caller: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Printf("[AUDIT] queue full, dropping action=%s", ev.Action)
	}
}

// Close drains queued events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}
