package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/vango-modal/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('x')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"; html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"),
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="container"><h1>Title</h1><p>Content</p></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderAttributes(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "sorted",
			node: vdom.Div(vdom.Role("dialog"), vdom.ID("d"), vdom.AriaModal(true)),
			want: `<div aria-modal="true" id="d" role="dialog"></div>`,
		},
		{
			name: "aria-modal false is kept",
			node: vdom.Div(vdom.AriaModal(false)),
			want: `<div aria-modal="false"></div>`,
		},
		{
			name: "void element",
			node: vdom.Input(vdom.Type("text"), vdom.Name("email")),
			want: `<input name="email" type="text">`,
		},
		{
			name: "boolean true",
			node: vdom.Button(vdom.Disabled()),
			want: `<button disabled></button>`,
		},
		{
			name: "boolean false omitted",
			node: vdom.Button(vdom.Attr{Key: "disabled", Value: false}),
			want: `<button></button>`,
		},
		{
			name: "attribute escaping",
			node: vdom.Div(vdom.TitleAttr("a \"b\"\n<c>")),
			want: `<div title="a &quot;b&quot;&#10;&lt;c&gt;"></div>`,
		},
		{
			name: "key not rendered",
			node: vdom.Li(vdom.Key("k"), "x"),
			want: `<li>x</li>`,
		},
		{
			name: "int attribute",
			node: vdom.Div(vdom.TabIndex(-1)),
			want: `<div tabindex="-1"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := NewRenderer(RendererConfig{}).RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if html != tt.want {
				t.Errorf("got %q, want %q", html, tt.want)
			}
		})
	}
}

func TestRenderFragmentComponentRaw(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Fragment(
		vdom.Func(func() *vdom.VNode { return vdom.Span("comp") }),
		vdom.Raw("<b>raw</b>"),
		vdom.Nothing(),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "<span>comp</span><b>raw</b>"; html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := NewRenderer(RendererConfig{}).RenderToString(&vdom.VNode{Kind: vdom.VKind(42)})
	if err == nil {
		t.Fatal("expected error for unknown node kind")
	}
}

func TestHydrationIDsOnlyOnInteractiveElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	clicked := 0
	button := vdom.Button(vdom.OnClick(func() { clicked++ }), "Open")
	node := vdom.Div(vdom.P("static"), button)

	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div><p>static</p><button data-hid="h1" data-on-click="true">Open</button></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
	if button.HID != "h1" {
		t.Errorf("button.HID = %q, want h1", button.HID)
	}

	handler, ok := renderer.GetHandlers()["h1_onclick"].(func())
	if !ok {
		t.Fatalf("handler not registered: %v", renderer.GetHandlers())
	}
	handler()
	if clicked != 1 {
		t.Errorf("clicked = %d, want 1", clicked)
	}
}

func TestRendererReset(t *testing.T) {
	renderer := NewRenderer(RendererConfig{HIDPrefix: "x"})
	node := func() *vdom.VNode { return vdom.Button(vdom.OnClick(func() {})) }

	if _, err := renderer.RenderToString(vdom.Div(node(), node())); err != nil {
		t.Fatal(err)
	}
	if len(renderer.GetHandlers()) != 2 {
		t.Fatalf("handlers = %d, want 2", len(renderer.GetHandlers()))
	}

	renderer.Reset()
	if len(renderer.GetHandlers()) != 0 {
		t.Error("Reset should clear handlers")
	}
	html, _ := renderer.RenderToString(node())
	if v := extractAttrValue(t, html, "data-hid"); v != "x1" {
		t.Errorf("data-hid = %q after Reset, want x1", v)
	}
}

func TestEscape(t *testing.T) {
	if got := escapeHTML(`a&b "c"`); got != "a&amp;b &quot;c&quot;" {
		t.Errorf("escapeHTML = %q", got)
	}
	if got := escapeAttr("a\tb\r"); got != "a&#9;b&#13;" {
		t.Errorf("escapeAttr = %q", got)
	}
	if !strings.Contains(escapeHTML("plain"), "plain") {
		t.Error("plain text altered")
	}
}

func TestRenderRecordsComponentExpansion(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	comp := &vdom.VNode{Kind: vdom.KindComponent, Comp: vdom.Func(func() *vdom.VNode {
		return vdom.Button(vdom.ID("inner"), vdom.OnClick(func() {}), "Inner")
	})}
	root := vdom.Div(comp)

	if _, err := renderer.RenderToString(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner := root.FindByID("inner")
	if inner == nil {
		t.Fatal("rendered component output not reachable from the tree")
	}
	if _, ok := renderer.GetHandlers()[inner.HID+"_onclick"]; !ok {
		t.Errorf("no handler registered for %q", inner.HID)
	}
}
