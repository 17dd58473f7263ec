// Package page renders the published menu document served at /m/{id}.
//
// The document carries the menu snapshot as an inline JSON script, the root
// screen pre-rendered into #outlet, and the loader for the browser viewer,
// which reads only the snapshot once it starts.
package page

import (
	_ "embed"
	"encoding/json"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/menushare/internal/menu"
	"github.com/dgallion1/menushare/internal/menutree"
	"github.com/dgallion1/menushare/internal/route"
	"github.com/dgallion1/menushare/internal/view"
)

// Element ids shared with the browser viewer.
const (
	IDBack     = "backBtn"
	IDTitle    = "topTitle"
	IDSubtitle = "topSub"
	IDBadge    = "topBadge"
	IDOutlet   = "outlet"
	IDData     = "menu-data"
)

//go:embed style.css
var styleSheet string

// Options controls the optional parts of the page.
type Options struct {
	// AssetsPrefix is where wasm_exec.js and viewer.wasm are served.
	// Empty disables the viewer and leaves a static root screen.
	AssetsPrefix string
}

// Render writes the page for one menu's data.
func Render(w io.Writer, data json.RawMessage, opts Options) error {
	d := menu.Decode(data)
	screen, _ := view.Resolve(d, menutree.Build(d.Items), route.Route{Kind: route.Root})

	body := el("body", nil, header(screen.Header))
	outlet := el("div", attrs("id", IDOutlet))
	outlet.AppendChild(el("div", attrs("class", "view in", "data-view", "0"), view.Body(screen)))
	body.AppendChild(el("div", attrs("class", "wrap"), outlet))

	body.AppendChild(el("script", attrs("id", IDData, "type", "application/json"),
		view.Text(Snapshot(data))))
	if opts.AssetsPrefix != "" {
		prefix := strings.TrimRight(opts.AssetsPrefix, "/")
		body.AppendChild(el("script", attrs("src", prefix+"/wasm_exec.js")))
		body.AppendChild(el("script", nil, view.Text(loader(prefix+"/viewer.wasm"))))
	}

	return renderDocument(w, d.Name, body)
}

// NotFound writes the page shown for an unknown menu id.
func NotFound(w io.Writer) error {
	body := el("body", nil, el("div", attrs("class", "wrap"),
		el("div", attrs("class", "list-card"),
			el("div", attrs("class", "empty"), view.Text("Not found")))))
	return renderDocument(w, "Not found", body)
}

// Snapshot serializes data for embedding inside a script element. Any "</"
// is written as "<\/" so the payload cannot close the element early.
func Snapshot(data json.RawMessage) string {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		s = "{}"
	}
	return strings.ReplaceAll(s, "</", `<\/`)
}

func header(h view.Header) *html.Node {
	back := el("button", attrs("id", IDBack, "class", "icon-btn", "type", "button", "aria-label", "Back"), view.Text("←"))
	if !h.CanBack {
		back.Attr = append(back.Attr, html.Attribute{Key: "hidden"})
	}
	return el("div", attrs("class", "top"),
		el("div", attrs("class", "top-inner"),
			back,
			el("div", attrs("class", "title-box"),
				el("div", attrs("id", IDTitle, "class", "h1"), view.Text(h.Title)),
				el("div", attrs("id", IDSubtitle, "class", "sub"), view.Text(h.Subtitle)),
			),
			el("div", attrs("id", IDBadge, "class", "badge"), view.Text(h.Badge)),
		),
	)
}

func renderDocument(w io.Writer, title string, body *html.Node) error {
	head := el("head", nil,
		el("meta", attrs("charset", "utf-8")),
		el("meta", attrs("name", "viewport", "content", "width=device-width, initial-scale=1")),
		el("title", nil, view.Text(title)),
		el("style", nil, view.Text(styleSheet)),
	)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(el("html", attrs("lang", "en"), head, body))
	return html.Render(w, doc)
}

func loader(wasmURL string) string {
	u, _ := json.Marshal(wasmURL)
	return `const go = new Go();
WebAssembly.instantiateStreaming(fetch(` + string(u) + `), go.importObject)
  .then((r) => go.run(r.instance))
  .catch((err) => console.error("viewer:", err));`
}

func el(tag string, a []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag)), Attr: a}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}
