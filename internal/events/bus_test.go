package events

import (
	"sync"
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan ControlChangedEvent, 1)

	unsub := bus.Subscribe(func(e ControlChangedEvent) {
		received <- e
	})
	defer unsub()

	ev := ControlChangedEvent{
		DeviceID:  "usb-cam",
		Control:   "zoom_absolute",
		Value:     150,
		Timestamp: "2025-01-27T10:30:00Z",
	}
	bus.Publish(ev)

	select {
	case got := <-received:
		if got != ev {
			t.Errorf("Expected %+v, got %+v", ev, got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan SessionClosedEvent, 1)

	unsub := bus.Subscribe(func(e SessionClosedEvent) {
		received <- e
	})

	bus.Publish(SessionClosedEvent{SessionID: "a"})
	<-received

	unsub()

	bus.Publish(SessionClosedEvent{SessionID: "b"})
	select {
	case <-received:
		t.Fatal("Should not have received event after unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_TypeSafety(t *testing.T) {
	bus := New()

	createdReceived := make(chan bool, 1)
	reloadReceived := make(chan bool, 1)

	unsub1 := bus.Subscribe(func(_ SessionCreatedEvent) { createdReceived <- true })
	defer unsub1()
	unsub2 := bus.Subscribe(func(_ CatalogReloadedEvent) { reloadReceived <- true })
	defer unsub2()

	bus.Publish(SessionCreatedEvent{SessionID: "s1"})
	<-createdReceived

	select {
	case <-reloadReceived:
		t.Fatal("catalog subscriber received a session event")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_ConcurrentPublish(_ *testing.T) {
	bus := New()
	var wg sync.WaitGroup
	publishers := 8
	perPublisher := 50
	expected := publishers * perPublisher

	received := make(chan struct{}, expected)
	unsub := bus.Subscribe(func(_ ControlChangedEvent) { received <- struct{}{} })
	defer unsub()

	for range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perPublisher {
				bus.Publish(ControlChangedEvent{Control: "focus_absolute", Value: i})
			}
		}()
	}
	wg.Wait()

	for range expected {
		<-received
	}
}

func TestBus_UnknownHandlerIsNoop(t *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(string) {})
	unsub()

	Discard.Publish(SessionClosedEvent{})
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 10)

	unsub := SubscribeToChannel[DeviceAddedEvent](bus, ch)
	defer unsub()

	bus.Publish(DeviceAddedEvent{DevicePath: "/dev/video0"})

	select {
	case got := <-ch:
		ev, ok := got.(DeviceAddedEvent)
		if !ok || ev.DevicePath != "/dev/video0" {
			t.Errorf("received %#v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not forwarded")
	}
}

func TestSubscribeToChannelNonBlocking(t *testing.T) {
	bus := New()
	ch := make(chan any) // never read

	unsub := SubscribeToChannel[SessionCreatedEvent](bus, ch)
	defer unsub()

	done := make(chan struct{})
	go func() {
		for range 5 {
			bus.Publish(SessionCreatedEvent{SessionID: "s"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full channel")
	}
}
