package modal_test

import (
	stderrors "errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/vango-dev/vango-modal/internal/errors"
	"github.com/vango-dev/vango-modal/pkg/modal"
	"github.com/vango-dev/vango-modal/pkg/vango"
	"github.com/vango-dev/vango-modal/pkg/vdom"
	"github.com/vango-dev/vango-modal/pkg/vtest"
)

// fixture records how often each modal body was rendered and keeps the
// close callback of every opening.
type fixture struct {
	renders map[string]int
	closes  map[string]modal.CloseFunc
	ctxSeen []string
}

func newFixture() *fixture {
	return &fixture{
		renders: make(map[string]int),
		closes:  make(map[string]modal.CloseFunc),
	}
}

func (f *fixture) render(arg string, ctx string, close modal.CloseFunc) *vdom.VNode {
	f.renders[arg]++
	f.closes[arg] = close
	f.ctxSeen = append(f.ctxSeen, ctx)
	return vdom.Div(
		vdom.H2(vdom.ID("modal-title"), vdom.Textf("modal:%s", arg)),
		vdom.Button(vdom.ID("close-"+arg), vdom.OnClick(func() { close() }), "Close"),
	)
}

// app mounts a collector with buttons opening and closing dlg.
func app(dlg modal.Handle[string, string], opts ...modal.Option) func() *vdom.VNode {
	return func() *vdom.VNode {
		return modal.UseCollector(opts...).View(
			vdom.Button(vdom.ID("open-a"), vdom.OnClick(func() { dlg.Open("A") }), "Open A"),
			vdom.Button(vdom.ID("open-b"), vdom.OnClick(func() { dlg.Open("B") }), "Open B"),
			vdom.Button(vdom.ID("close"), vdom.OnClick(func() { dlg.Close() }), "Close"),
		)
	}
}

func expectClosed(t *testing.T, h *vtest.Host) {
	t.Helper()
	h.ExpectAttribute("aria-modal", "false")
	h.ExpectNotContains(modal.OverlayID)
	h.ExpectNotContains(modal.NodeID)
	h.ExpectNotContains("modal:")
}

func TestCollectorClosedInitially(t *testing.T) {
	f := newFixture()
	h := vtest.Mount(t, app(modal.New(f.render, "ctx")))

	expectClosed(t, h)
	h.ExpectAttribute("class", modal.CollectorClass)
	h.ExpectAttribute("role", "dialog")
	h.ExpectAttribute("aria-labelledby", modal.DefaultLabelledBy)
	h.ExpectContains("Open A")
	if len(f.renders) != 0 {
		t.Errorf("renders = %v, want none", f.renders)
	}
}

func TestOpenShowsModal(t *testing.T) {
	f := newFixture()
	h := vtest.Mount(t, app(modal.New(f.render, "ctx")))

	h.ClickID("open-a")

	h.ExpectContains("modal:A")
	h.ExpectAttribute("aria-modal", "true")
	h.ExpectAttribute("id", modal.OverlayID)
	h.ExpectAttribute("id", modal.NodeID)
	h.ExpectAttribute("aria-hidden", "true")
	h.ExpectContains("background:rgba(0, 0, 0, .25)")
	h.ExpectContains("position:relative;z-index:2147483647")
	h.ExpectContains("z-index:2147483646;width:100vw;overflow-y:auto")
	h.ExpectContains("display:flex")

	if f.renders["A"] != 1 {
		t.Errorf("render(A) called %d times, want 1", f.renders["A"])
	}
	if len(f.ctxSeen) != 1 || f.ctxSeen[0] != "ctx" {
		t.Errorf("ctx passed = %v", f.ctxSeen)
	}
}

func TestOpenKeepsChildrenBeforeDialog(t *testing.T) {
	f := newFixture()
	h := vtest.Mount(t, app(modal.New(f.render, "ctx")))
	h.ClickID("open-a")

	html := h.HTML()
	children := strings.Index(html, "Open A")
	dialog := strings.Index(html, `role="dialog"`)
	if children < 0 || dialog < 0 || children > dialog {
		t.Errorf("children must precede the dialog:\n%s", html)
	}
	if strings.Index(html, modal.OverlayID) > strings.Index(html, modal.NodeID) {
		t.Errorf("overlay must precede the container:\n%s", html)
	}
}

func TestOpenReplacesCurrentModal(t *testing.T) {
	f := newFixture()
	h := vtest.Mount(t, app(modal.New(f.render, "ctx")))

	h.ClickID("open-a")
	h.ClickID("open-b")

	h.ExpectContains("modal:B")
	h.ExpectNotContains("modal:A")
	if n := strings.Count(h.HTML(), `id="`+modal.OverlayID+`"`); n != 1 {
		t.Errorf("overlay count = %d, want 1", n)
	}
	if f.renders["A"] != 1 || f.renders["B"] != 1 {
		t.Errorf("renders = %v, want one each", f.renders)
	}
}

func TestStaleCloseCallbackIsInert(t *testing.T) {
	f := newFixture()
	h := vtest.Mount(t, app(modal.New(f.render, "ctx")))

	h.ClickID("open-a")
	h.ClickID("open-b")

	h.Invoke(func() { f.closes["A"]() })
	h.ExpectContains("modal:B")
	h.ExpectAttribute("aria-modal", "true")

	h.Invoke(func() { f.closes["B"]() })
	expectClosed(t, h)
}

func TestCloseFromInsideModal(t *testing.T) {
	f := newFixture()
	h := vtest.Mount(t, app(modal.New(f.render, "ctx")))

	h.ClickID("open-a")
	h.ClickID("close-A")

	expectClosed(t, h)
}

func TestCloseCallbackAfterCloseIsNoop(t *testing.T) {
	f := newFixture()
	var got []modal.Transition
	h := vtest.Mount(t, app(modal.New(f.render, "ctx"),
		modal.WithObserver(func(tr modal.Transition) { got = append(got, tr) })))

	h.ClickID("open-a")
	h.ClickID("close")
	h.Invoke(func() { f.closes["A"]() })
	h.ClickID("open-a")
	h.Invoke(func() { f.closes["A"]() })

	wantKinds := []modal.TransitionKind{modal.Opened, modal.Closed, modal.Opened, modal.Closed}
	if len(got) != len(wantKinds) {
		t.Fatalf("transitions = %+v", got)
	}
	for i, k := range wantKinds {
		if got[i].Kind != k {
			t.Errorf("transition %d = %v, want %v", i, got[i].Kind, k)
		}
	}
	if got[1].Reason != modal.ReasonHandle || got[3].Reason != modal.ReasonCallback {
		t.Errorf("reasons = %q, %q", got[1].Reason, got[3].Reason)
	}
}

func TestHandleCloseClosesAnyModal(t *testing.T) {
	f := newFixture()
	other := modal.New(func(int, string, modal.CloseFunc) *vdom.VNode {
		return vdom.P("other-modal")
	}, "")

	h := vtest.Mount(t, app(modal.New(f.render, "ctx")))
	h.Invoke(func() { other.Open(1) })
	h.ExpectContains("other-modal")

	h.ClickID("close")
	expectClosed(t, h)

	h.ClickID("close")
	expectClosed(t, h)
}

func TestEscapeClosesModal(t *testing.T) {
	f := newFixture()
	var got []modal.Transition
	h := vtest.Mount(t, app(modal.New(f.render, "ctx"),
		modal.WithObserver(func(tr modal.Transition) { got = append(got, tr) })))

	h.KeyUp(vango.KeyEscape)
	if len(got) != 0 {
		t.Fatalf("Escape on empty slot produced %+v", got)
	}

	h.ClickID("open-a")
	h.KeyUp("Enter")
	h.KeyUp("escape")
	h.ExpectContains("modal:A")

	h.KeyUp(vango.KeyEscape)
	expectClosed(t, h)

	h.KeyUp(vango.KeyEscape)
	if len(got) != 2 || got[1].Kind != modal.Closed || got[1].Reason != modal.ReasonEscape {
		t.Errorf("transitions = %+v", got)
	}
}

func TestUnrelatedRerenderKeepsModalContent(t *testing.T) {
	f := newFixture()
	dlg := modal.New(f.render, "ctx")
	tick := vango.NewSignal(0)

	h := vtest.Mount(t, func() *vdom.VNode {
		return modal.Collector(
			vdom.P(vdom.Textf("tick=%d", tick.Get())),
			vdom.Button(vdom.ID("open-a"), vdom.OnClick(func() { dlg.Open("A") })),
		)
	})

	h.ClickID("open-a")
	h.Invoke(func() { tick.Set(1) })
	h.Invoke(func() { tick.Set(2) })

	h.ExpectContains("tick=2")
	h.ExpectContains("modal:A")
	if f.renders["A"] != 1 {
		t.Errorf("render(A) called %d times, want 1", f.renders["A"])
	}
	if h.Renders() != 4 {
		t.Errorf("Renders = %d, want 4", h.Renders())
	}
}

func TestOpenWithoutCollectorPanics(t *testing.T) {
	f := newFixture()
	dlg := modal.New(f.render, "ctx")

	for name, op := range map[string]func(){
		"open":  func() { dlg.Open("A") },
		"close": func() { dlg.Close() },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok {
					t.Fatalf("recovered %v, want an error", r)
				}
				var ve *errors.VangoError
				if !stderrors.As(err, &ve) || ve.Code != "E200" {
					t.Errorf("panic = %v, want E200", err)
				}
			}()
			op()
		})
	}

	if len(f.renders) != 0 {
		t.Errorf("render ran without a collector: %v", f.renders)
	}
}

func TestBoundHandleWithoutOwner(t *testing.T) {
	f := newFixture()
	c := modal.NewCollector()
	dlg := modal.NewBound(c.Slot(), f.render, "ctx")

	if !dlg.IsBound() || modal.New(f.render, "").IsBound() {
		t.Fatal("IsBound mismatch")
	}
	if dlg.Context() != "ctx" {
		t.Errorf("Context = %q", dlg.Context())
	}

	dlg.Open("A")
	first := vtest.RenderToString(c.View())
	second := vtest.RenderToString(c.View())

	for _, html := range []string{first, second} {
		if !strings.Contains(html, "modal:A") {
			t.Errorf("missing modal content:\n%s", html)
		}
	}
	if f.renders["A"] != 1 {
		t.Errorf("render(A) called %d times, want 1", f.renders["A"])
	}
	if got := c.Slot().Renderer()(); !got.IsEmpty() {
		t.Errorf("renderer should be drained after the view picked it up, got %+v", got)
	}
}

func TestBindOverridesAmbientSlot(t *testing.T) {
	f := newFixture()
	explicit := modal.NewCollector()
	dlg := modal.New(f.render, "ctx").Bind(explicit.Slot())

	h := vtest.Mount(t, app(dlg))
	h.ClickID("open-a")

	expectClosed(t, h)
	if !explicit.Slot().IsOpen() {
		t.Error("bound slot should be open")
	}
}

func TestUseBindsProvidedSlot(t *testing.T) {
	f := newFixture()
	var dlg modal.Handle[string, string]

	h := vtest.Mount(t, func() *vdom.VNode {
		c := modal.UseCollector()
		dlg = modal.Use(f.render, "ctx")
		return c.View()
	})

	if !dlg.IsBound() {
		t.Fatal("Use should bind the provided slot")
	}

	dlg.Open("A")
	h.Flush()
	h.ExpectContains("modal:A")
}

func TestUnmountRemovesListenerAndCloses(t *testing.T) {
	f := newFixture()
	var got []modal.Transition
	c := modal.NewCollector(modal.WithObserver(func(tr modal.Transition) { got = append(got, tr) }))
	doc := vango.NewDocument()

	c.Mount(doc)
	if n := doc.ListenerCount(vango.EventKeyUp); n != 1 {
		t.Fatalf("ListenerCount = %d, want 1", n)
	}

	modal.NewBound(c.Slot(), f.render, "").Open("A")
	c.Unmount()

	if n := doc.ListenerCount(vango.EventKeyUp); n != 0 {
		t.Errorf("ListenerCount after Unmount = %d, want 0", n)
	}
	if c.Slot().IsOpen() {
		t.Error("Unmount should close the modal")
	}
	if last := got[len(got)-1]; last.Kind != modal.Closed || last.Reason != modal.ReasonUnmount {
		t.Errorf("last transition = %+v", last)
	}
	if doc.DispatchKeyUp(vango.KeyboardEvent{Key: vango.KeyEscape}) != 0 {
		t.Error("no listener should run after Unmount")
	}
}

func TestMountMovesListener(t *testing.T) {
	c := modal.NewCollector()
	first, second := vango.NewDocument(), vango.NewDocument()

	c.Mount(first)
	c.Mount(second)
	c.Mount(nil)

	if first.ListenerCount(vango.EventKeyUp) != 0 || second.ListenerCount(vango.EventKeyUp) != 1 {
		t.Errorf("listeners: first=%d second=%d",
			first.ListenerCount(vango.EventKeyUp), second.ListenerCount(vango.EventKeyUp))
	}
	c.Unmount()
}

func TestHostUnmountDisposesCollector(t *testing.T) {
	f := newFixture()
	h := vtest.Mount(t, app(modal.New(f.render, "ctx")))
	h.ClickID("open-a")

	h.Unmount()
	if n := h.Document().ListenerCount(vango.EventKeyUp); n != 0 {
		t.Errorf("ListenerCount = %d, want 0", n)
	}
}

func TestCollectorOptions(t *testing.T) {
	c := modal.NewCollector(
		modal.WithLabelledBy("confirm-title"),
		modal.WithZIndex(100),
		modal.WithBackdrop("black"),
	)
	modal.NewBound(c.Slot(), func(struct{}, struct{}, modal.CloseFunc) *vdom.VNode {
		return vdom.P("body")
	}, struct{}{}).Open(struct{}{})

	node := c.View()
	vtest.ExpectAttribute(t, node, "aria-labelledby", "confirm-title")
	vtest.ExpectContains(t, node, "position:relative;z-index:100")
	vtest.ExpectContains(t, node, "z-index:99;")
	vtest.ExpectContains(t, node, "background:black")
}

func TestNewNoContext(t *testing.T) {
	c := modal.NewCollector()
	var closeFn modal.CloseFunc
	dlg := modal.NewNoContext(func(n int, close modal.CloseFunc) *vdom.VNode {
		closeFn = close
		return vdom.P(vdom.Textf("n=%d", n))
	}).Bind(c.Slot())

	dlg.Open(7)
	vtest.ExpectContains(t, c.View(), "n=7")

	closeFn()
	if c.Slot().IsOpen() {
		t.Error("close callback should close the modal")
	}
}

func TestComponentRendersBodyOnce(t *testing.T) {
	calls := 0
	body := modal.Component(func(arg string, _ struct{}, _ modal.CloseFunc) *vdom.VNode {
		calls++
		return vdom.Strong(arg)
	})

	c := modal.NewCollector()
	modal.NewBound(c.Slot(), body, struct{}{}).Open("wrapped")

	if calls != 0 {
		t.Fatalf("body ran before render: %d", calls)
	}
	node := c.View()
	vtest.ExpectContains(t, node, "<strong>wrapped</strong>")
	vtest.ExpectContains(t, node, "<strong>wrapped</strong>")
	if calls != 1 {
		t.Errorf("body ran %d times, want 1", calls)
	}
	if comp := node.Find(func(n *vdom.VNode) bool { return n.Kind == vdom.KindComponent }); comp == nil {
		t.Error("wrapped body should be a component node")
	}
}

// TestRandomSequencesMatchModel drives a collector through seeded random
// sequences of opens, closes, Escape presses and close callbacks, some of
// them stale, and checks the rendered page against a one-slot model after
// every step.
func TestRandomSequencesMatchModel(t *testing.T) {
	const steps = 40

	for seed := int64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			f := newFixture()
			dlg := modal.New(f.render, "ctx")

			var slot *modal.Slot
			h := vtest.Mount(t, func() *vdom.VNode {
				c := modal.UseCollector()
				slot = c.Slot()
				return c.View(vdom.Button(vdom.ID("close"), vdom.OnClick(func() { dlg.Close() }), "Close"))
			})

			var (
				open   string // arg of the open modal, "" when closed
				opened []string
			)
			for step := 1; step <= steps; step++ {
				switch op := rng.Intn(5); {
				case op == 0 || op == 1:
					arg := strconv.Itoa(step)
					h.Invoke(func() { dlg.Open(arg) })
					open = arg
					opened = append(opened, arg)
				case op == 2:
					h.ClickID("close")
					open = ""
				case op == 3:
					h.KeyUp(vango.KeyEscape)
					open = ""
				case len(opened) > 0:
					arg := opened[rng.Intn(len(opened))]
					h.Invoke(func() { f.closes[arg]() })
					if arg == open {
						open = ""
					}
				}

				if open == "" {
					expectClosed(t, h)
					if slot.IsOpen() || slot.Generation() != 0 {
						t.Fatalf("step %d: slot open=%v gen=%d, want empty", step, slot.IsOpen(), slot.Generation())
					}
					continue
				}
				h.ExpectAttribute("aria-modal", "true")
				h.ExpectContains(">modal:" + open + "<")
				if n := strings.Count(h.HTML(), ">modal:"); n != 1 {
					t.Fatalf("step %d: %d modal bodies shown, want 1", step, n)
				}
				if got, want := slot.Generation(), uint64(len(opened)); got != want {
					t.Fatalf("step %d: Generation = %d, want %d", step, got, want)
				}
			}

			for arg, n := range f.renders {
				if n != 1 {
					t.Errorf("modal %s rendered %d times, want 1", arg, n)
				}
			}
		})
	}
}
