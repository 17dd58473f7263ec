//go:build js && wasm

// Command viewer runs the menu presentation engine in the browser. It is
// built with GOOS=js GOARCH=wasm and served next to wasm_exec.js; the
// published page loads it and hands over the embedded menu snapshot.
package main

import (
	"sync"
	"syscall/js"
	"time"

	"github.com/dgallion1/menushare/internal/menu"
	"github.com/dgallion1/menushare/internal/menutree"
	"github.com/dgallion1/menushare/internal/nav"
	"github.com/dgallion1/menushare/internal/page"
	"github.com/dgallion1/menushare/internal/route"
	"github.com/dgallion1/menushare/internal/view"
)

type viewer struct {
	window   js.Value
	document js.Value

	data    menu.Data
	tree    *menutree.Tree
	history *nav.History
	outlet  *nav.Outlet

	title, subtitle, badge, back js.Value
}

func main() {
	window := js.Global()
	document := window.Get("document")

	raw := ""
	if el := document.Call("getElementById", page.IDData); el.Truthy() {
		raw = el.Get("textContent").String()
	}
	data := menu.Decode([]byte(raw))

	outletEl := document.Call("getElementById", page.IDOutlet)
	outletEl.Set("innerHTML", "")

	v := &viewer{
		window:   window,
		document: document,
		data:     data,
		tree:     menutree.Build(data.Items),
		history:  nav.NewHistory(),
		outlet:   nav.NewOutlet(&domSurface{document: document, outlet: outletEl, views: map[nav.ViewID]js.Value{}}, browserScheduler{window: window}, nav.RemovalDelay),
		title:    document.Call("getElementById", page.IDTitle),
		subtitle: document.Call("getElementById", page.IDSubtitle),
		badge:    document.Call("getElementById", page.IDBadge),
		back:     document.Call("getElementById", page.IDBack),
	}

	window.Call("addEventListener", "hashchange", js.FuncOf(func(js.Value, []js.Value) any {
		v.render()
		return nil
	}))
	v.back.Call("addEventListener", "click", js.FuncOf(func(js.Value, []js.Value) any {
		if v.history.Depth() > 1 {
			v.window.Get("history").Call("back")
		} else {
			v.window.Get("location").Set("hash", "")
		}
		return nil
	}))

	v.render()
	select {}
}

func (v *viewer) render() {
	hash := v.window.Get("location").Get("hash").String()
	dir := v.history.Observe(hash)

	screen, ok := view.Resolve(v.data, v.tree, route.Parse(hash))
	if !ok {
		// The next hashchange renders the root.
		v.window.Get("location").Set("hash", "")
		return
	}

	h := screen.Header
	v.title.Set("textContent", h.Title)
	v.subtitle.Set("textContent", h.Subtitle)
	v.badge.Set("textContent", h.Badge)
	v.back.Set("hidden", !h.CanBack)
	v.document.Set("title", v.data.Name)

	v.outlet.Show(view.Markup(screen), dir)
	v.window.Call("scrollTo", 0, 0)
}

// domSurface mounts views as children of #outlet.
type domSurface struct {
	document js.Value
	outlet   js.Value
	views    map[nav.ViewID]js.Value
}

func (s *domSurface) Mount(id nav.ViewID, markup string, dir nav.Direction) {
	el := s.document.Call("createElement", "div")
	el.Set("className", "view "+dir.String())
	el.Call("setAttribute", "data-view", int(id))
	el.Set("inert", true)
	el.Set("innerHTML", markup)
	s.outlet.Call("appendChild", el)
	s.views[id] = el
}

func (s *domSurface) Enter(id nav.ViewID) {
	if el, ok := s.views[id]; ok {
		el.Set("inert", false)
		el.Get("classList").Call("add", "in")
	}
}

func (s *domSurface) Leave(id nav.ViewID) {
	if el, ok := s.views[id]; ok {
		el.Set("inert", true)
		cl := el.Get("classList")
		cl.Call("remove", "in")
		cl.Call("add", "out", "leaving")
	}
}

func (s *domSurface) Remove(id nav.ViewID) {
	if el, ok := s.views[id]; ok {
		el.Call("remove")
		delete(s.views, id)
	}
}

// browserScheduler runs callbacks from the browser event loop.
type browserScheduler struct {
	window js.Value
}

func (b browserScheduler) After(d time.Duration, f func()) func() {
	var release sync.Once
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		release.Do(cb.Release)
		f()
		return nil
	})
	handle := b.window.Call("setTimeout", cb, d.Milliseconds())
	return func() {
		b.window.Call("clearTimeout", handle)
		release.Do(cb.Release)
	}
}

func (b browserScheduler) NextFrame(f func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		f()
		return nil
	})
	b.window.Call("requestAnimationFrame", cb)
}
