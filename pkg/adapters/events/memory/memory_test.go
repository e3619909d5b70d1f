package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"gatelab/pkg/domain"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	RegisterTestingT(t)

	bus := NewEventBus()
	defer func() { _ = bus.Close() }()

	var mu sync.Mutex
	var received []string
	handler := func(ctx context.Context, event domain.Event) error {
		mu.Lock()
		received = append(received, event.ID)
		mu.Unlock()
		return nil
	}

	ctx := context.Background()
	Expect(bus.Subscribe(ctx, "run.events", handler)).To(Succeed())
	Expect(bus.Subscribe(ctx, "run.events", handler)).To(Succeed())

	Expect(bus.Publish(ctx, "run.events", domain.Event{ID: "e1", Type: domain.EventTypeCallCompleted})).To(Succeed())

	Eventually(func() int {
		mu.Lock()
		defer mu.Unlock()
		return len(received)
	}).Should(Equal(2))
}

func TestPublishIgnoresOtherTopics(t *testing.T) {
	RegisterTestingT(t)

	bus := NewEventBus()
	defer func() { _ = bus.Close() }()

	called := make(chan struct{}, 1)
	handler := func(ctx context.Context, event domain.Event) error {
		called <- struct{}{}
		return nil
	}

	ctx := context.Background()
	Expect(bus.Subscribe(ctx, "topic.a", handler)).To(Succeed())
	Expect(bus.Publish(ctx, "topic.b", domain.Event{ID: "e1"})).To(Succeed())

	Consistently(called, 50*time.Millisecond).ShouldNot(Receive())
}

func TestSubscriptionEndsWithContext(t *testing.T) {
	RegisterTestingT(t)

	bus := NewEventBus()
	defer func() { _ = bus.Close() }()

	called := make(chan struct{}, 4)
	handler := func(ctx context.Context, event domain.Event) error {
		called <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	Expect(bus.Subscribe(ctx, "run.events", handler)).To(Succeed())

	cancel()
	// wait for the cleanup goroutine to disable the handler
	Eventually(func() bool {
		bus.mu.RLock()
		defer bus.mu.RUnlock()
		return bus.subscribers["run.events"][0] == nil
	}).Should(BeTrue())

	Expect(bus.Publish(context.Background(), "run.events", domain.Event{ID: "e1"})).To(Succeed())
	Consistently(called, 50*time.Millisecond).ShouldNot(Receive())
}
