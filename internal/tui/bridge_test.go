package tui

import (
	"errors"
	"sync"
	"testing"

	"github.com/agbru/handlewatch/internal/scheduler"
)

func TestBridge_Send_NilProgram(t *testing.T) {
	b := NewBridge()
	// Must not panic without a program.
	b.Send(TickMsg{})
	b.Sink(scheduler.Result{Err: errors.New("boom")})
}

func TestBridge_Send_Concurrent(t *testing.T) {
	b := NewBridge() // nil program - Send is a no-op

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Sink(scheduler.Result{Generation: uint64(i)})
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.SetProgram(nil)
	}()
	wg.Wait()
	// If we reach here without panic/race, the test passes
}

func TestBridge_SinkComposes(t *testing.T) {
	b := NewBridge()
	var got []scheduler.Result
	sink := scheduler.Sinks(b.Sink, func(r scheduler.Result) { got = append(got, r) })

	sink(scheduler.Result{Generation: 3})
	if len(got) != 1 || got[0].Generation != 3 {
		t.Errorf("got %+v, want one result of generation 3", got)
	}
}
