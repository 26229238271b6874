package events

import (
	"context"
	"testing"

	"fintrack/internal/store"
)

func TestMemoryBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()

	var first, second []store.Change
	bus.Subscribe(func(c store.Change) { first = append(first, c) })
	bus.Subscribe(func(c store.Change) { second = append(second, c) })

	change := store.Change{Table: store.TableRecords, Op: store.OpInsert, ID: "r1"}
	if err := bus.Publish(context.Background(), change); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(first) != 1 || first[0] != change {
		t.Fatalf("first subscriber got %v, want [%v]", first, change)
	}
	if len(second) != 1 || second[0] != change {
		t.Fatalf("second subscriber got %v, want [%v]", second, change)
	}
}

func TestMemoryBusUnsubscribe(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()

	var got []store.Change
	unsubscribe := bus.Subscribe(func(c store.Change) { got = append(got, c) })
	unsubscribe()

	if err := bus.Publish(context.Background(), store.Change{Table: store.TableWishes, Op: store.OpDelete, ID: "w1"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unsubscribed handler still received %d changes", len(got))
	}
}

func TestMemoryBusPublishAfterClose(t *testing.T) {
	bus := NewMemoryBus()

	var got []store.Change
	bus.Subscribe(func(c store.Change) { got = append(got, c) })

	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Publish(context.Background(), store.Change{Table: store.TableCreditCards, Op: store.OpUpdate, ID: "c1"}); err != nil {
		t.Fatalf("Publish() after close error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("handler received %d changes after close", len(got))
	}
}

func TestChangeMessageRoundTrip(t *testing.T) {
	change := store.Change{Table: store.TableProfiles, Op: store.OpUpdate, ID: "1"}

	msg := NewChangeMessage(change)
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	decoded, err := ChangeMessageFromJSON(data)
	if err != nil {
		t.Fatalf("ChangeMessageFromJSON() error = %v", err)
	}
	if decoded.Change() != change {
		t.Fatalf("Change() = %v, want %v", decoded.Change(), change)
	}
	if decoded.Timestamp.IsZero() {
		t.Fatal("Timestamp not preserved")
	}
}

func TestChangeMessageFromJSONInvalid(t *testing.T) {
	if _, err := ChangeMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
