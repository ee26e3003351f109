package vango

import (
	"reflect"
	"testing"
)

func TestDocumentKeyUpDispatch(t *testing.T) {
	doc := NewDocument()

	var keys []string
	remove := doc.OnKeyUp(func(e KeyboardEvent) {
		keys = append(keys, e.Key)
	})

	doc.DispatchKeyUp(KeyboardEvent{Key: KeyEscape})
	doc.DispatchKeyDown(KeyboardEvent{Key: "a"})
	doc.DispatchKeyUp(KeyboardEvent{Key: "b"})

	if !reflect.DeepEqual(keys, []string{"Escape", "b"}) {
		t.Errorf("keys = %v", keys)
	}

	remove()
	remove()
	if n := doc.DispatchKeyUp(KeyboardEvent{Key: KeyEscape}); n != 0 {
		t.Errorf("Dispatch after remove ran %d listeners", n)
	}
	if len(doc.Events()) != 0 {
		t.Errorf("Events() = %v, want none", doc.Events())
	}
}

func TestDocumentListenerCanRemoveItself(t *testing.T) {
	doc := NewDocument()

	calls := 0
	var remove func()
	remove = doc.OnKeyUp(func(KeyboardEvent) {
		calls++
		remove()
	})
	doc.OnKeyUp(func(KeyboardEvent) { calls++ })

	if n := doc.DispatchKeyUp(KeyboardEvent{Key: "x"}); n != 2 {
		t.Errorf("first dispatch ran %d listeners, want 2", n)
	}
	if n := doc.DispatchKeyUp(KeyboardEvent{Key: "x"}); n != 1 {
		t.Errorf("second dispatch ran %d listeners, want 1", n)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDocumentIgnoresWrongPayload(t *testing.T) {
	doc := NewDocument()
	called := false
	doc.OnKeyUp(func(KeyboardEvent) { called = true })

	doc.Dispatch(EventKeyUp, "not an event")
	if called {
		t.Error("typed listener should ignore foreign payloads")
	}
}

func TestUseDocument(t *testing.T) {
	if UseDocument() != nil {
		t.Fatal("UseDocument outside host should be nil")
	}
	doc := NewDocument()
	WithDocument(doc, func() {
		if UseDocument() != doc {
			t.Error("UseDocument should return current doc")
		}
	})
	if UseDocument() != nil {
		t.Error("document should be restored")
	}
}

func TestKeyboardEventHasModifier(t *testing.T) {
	if (KeyboardEvent{Key: KeyEscape}).HasModifier() {
		t.Error("plain Escape has no modifier")
	}
	if !(KeyboardEvent{Key: KeyEscape, ShiftKey: true}).HasModifier() {
		t.Error("Shift+Escape has a modifier")
	}
}
