package events

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/EveryHotel/flag-tools/pkg/flags"
)

type EventName string

const (
	FlagsSet       EventName = "flags.set"
	FlagsMerged    EventName = "flags.merged"
	FlagsRemoved   EventName = "flags.removed"
	SubjectDeleted EventName = "flags.subject_deleted"
)

// FlagsChanged описывает изменение флагов субъекта
type FlagsChanged struct {
	Subject uuid.UUID
	// Flags итоговое значение после изменения
	Flags flags.Flag
	// Pattern биты, с которыми выполнялась операция
	Pattern flags.Flag
}

type Listener func(ctx context.Context, event FlagsChanged) error

type Subscriber map[EventName][]Listener

type Dispatcher interface {
	AddListener(EventName, Listener)
	AddSubscriber(Subscriber)
	Dispatch(context.Context, EventName, FlagsChanged) error
}

type dispatcher struct {
	events map[EventName][]Listener
}

func NewDispatcher() Dispatcher {
	return &dispatcher{
		events: make(map[EventName][]Listener),
	}
}

func (d *dispatcher) AddListener(name EventName, listener Listener) {
	d.events[name] = append(d.events[name], listener)
}

func (d *dispatcher) AddSubscriber(subscriber Subscriber) {
	for eventName, listeners := range subscriber {
		for _, listener := range listeners {
			d.AddListener(eventName, listener)
		}
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, name EventName, event FlagsChanged) error {
	for i, listener := range d.events[name] {
		if err := listener(ctx, event); err != nil {
			return fmt.Errorf("dispatch event %s with %d listener: %w", name, i, err)
		}
	}

	return nil
}
