package main

import (
	"time"

	"github.com/vango-dev/vango-modal/pkg/modal"
	"github.com/vango-dev/vango-modal/pkg/server"
	"github.com/vango-dev/vango-modal/pkg/vango"
	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// backgroundDelay is how long the demo's background job takes.
var backgroundDelay = 2 * time.Second

var dialogStyle = vdom.Styles(
	"background", "#fff",
	"border-radius", "0.5rem",
	"padding", "1.5rem",
	"max-width", "28rem",
)

// demoApp is the root component of the demo page. Each call starts with a
// fresh file list, so every session gets its own. The collector reports
// its transitions to the session that renders it.
func demoApp(opts ...modal.Option) server.Component {
	files := vango.NewSignal([]string{"report.pdf", "notes.txt", "photo.png"})
	about := modal.NewNoContext(aboutDialog)

	return server.FuncComponent(func() *vdom.VNode {
		collector := modal.UseCollector(append([]modal.Option{modal.WithObserver(server.ModalObserver())}, opts...)...)
		confirm := modal.Use(modal.Component(confirmDelete), files)
		notice := modal.Use(noticeDialog, "Background job")

		current := files.Get()
		return collector.View(
			vdom.Main(
				vdom.H1("Files"),
				vdom.Ul(vdom.Range(current, func(name string, _ int) *vdom.VNode {
					return vdom.Li(
						vdom.Span(name),
						vdom.Button(vdom.ID("delete-"+name), vdom.OnClick(func() { confirm.Open(name) }), "Delete"),
					)
				})),
				vdom.If(len(current) == 0, vdom.P(vdom.ID("empty"), "No files left.")),
				vdom.H3("More"),
				vdom.Button(vdom.ID("about"), vdom.OnClick(func() { about.Open("vango-modal " + version) }), "About"),
				vdom.Button(vdom.ID("background"), vdom.OnClick(func() {
					go func() {
						defer vango.ReleaseGoroutine()
						time.Sleep(backgroundDelay)
						notice.Open("finished")
					}()
				}), "Run background job"),
			),
			vdom.Footer(vdom.Small("Built with vango-modal.")),
		)
	})
}

func confirmDelete(name string, files *vango.Signal[[]string], close modal.CloseFunc) *vdom.VNode {
	return vdom.Div(dialogStyle,
		vdom.H2(vdom.ID(modal.DefaultLabelledBy), "Delete "+name+"?"),
		vdom.P(vdom.Code(name), " will be removed. ", vdom.Em("This cannot be undone.")),
		vdom.Button(vdom.ID("cancel"), vdom.OnClick(close), "Cancel"),
		vdom.Button(vdom.ID("confirm"), vdom.OnClick(func() {
			files.Update(func(cur []string) []string {
				next := make([]string, 0, len(cur))
				for _, f := range cur {
					if f != name {
						next = append(next, f)
					}
				}
				return next
			})
			close()
		}), "Delete"),
	)
}

func aboutDialog(text string, close modal.CloseFunc) *vdom.VNode {
	return vdom.Div(dialogStyle,
		vdom.H2(vdom.ID(modal.DefaultLabelledBy), "About"),
		vdom.P(text),
		vdom.Hr(),
		vdom.P(vdom.Small("Press ", vdom.Em("Escape"), " to close.")),
		vdom.Button(vdom.ID("ok"), vdom.OnClick(close), "OK"),
	)
}

func noticeDialog(status string, job string, close modal.CloseFunc) *vdom.VNode {
	return vdom.Div(dialogStyle,
		vdom.H2(vdom.ID(modal.DefaultLabelledBy), job),
		vdom.P(vdom.Textf("%s %s.", job, status)),
		vdom.Button(vdom.ID("dismiss"), vdom.OnClick(close), "Dismiss"),
	)
}
