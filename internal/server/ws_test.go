package server

import (
	"testing"
)

func TestEventsHandler_PointerMessages(t *testing.T) {
	t.Run("pressure defaults to full when absent", func(t *testing.T) {
		a := newTestApp(t)
		h := NewEventsHandler(a)

		h.handleMessage([]byte(`{"type":"pointer_down","x":100,"y":100}`))

		st := a.Status().Stroke
		if st.State != "drawing" {
			t.Fatalf("state = %q, want drawing", st.State)
		}
		if st.Pressure != 1.0 {
			t.Errorf("pressure = %f, want 1.0 when omitted", st.Pressure)
		}

		h.handleMessage([]byte(`{"type":"pointer_up"}`))
		if got := a.Status().Stroke.State; got != "idle" {
			t.Errorf("state after pointer_up = %q, want idle", got)
		}
	})

	t.Run("explicit pressure is honored", func(t *testing.T) {
		a := newTestApp(t)
		h := NewEventsHandler(a)

		h.handleMessage([]byte(`{"type":"pointer_down","x":100,"y":100,"pressure":0.4}`))

		if got := a.Status().Stroke.Pressure; got != 0.4 {
			t.Errorf("pressure = %f, want 0.4", got)
		}
		h.handleMessage([]byte(`{"type":"pointer_up"}`))
	})

	t.Run("move and up complete a stroke", func(t *testing.T) {
		a := newTestApp(t)
		h := NewEventsHandler(a)

		h.handleMessage([]byte(`{"type":"pointer_down","x":50,"y":50}`))
		h.handleMessage([]byte(`{"type":"pointer_move","x":80,"y":60}`))
		h.handleMessage([]byte(`{"type":"pointer_up"}`))

		if a.Engine().Front().Pixel(50, 50).A == 0 {
			t.Error("committed stroke left no ink at the origin")
		}
	})

	t.Run("malformed payload is dropped", func(t *testing.T) {
		a := newTestApp(t)
		h := NewEventsHandler(a)

		h.handleMessage([]byte(`{"type":"pointer_down","x":`))
		h.handleMessage([]byte(`not json at all`))

		if got := a.Status().Stroke.State; got != "idle" {
			t.Errorf("state after malformed input = %q, want idle", got)
		}
	})
}
