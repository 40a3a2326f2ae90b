package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/modboard/modboard/internal/http/viewmodels"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@2.0.4" crossorigin="anonymous"></script>`

// Layout wraps body in the page shell: head, tab navigation, alert banner and
// toast. The body element carries the CSRF header for htmx requests.
func Layout(data viewmodels.LayoutData, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		title := data.Title
		if title == "" {
			title = "modboard"
		} else {
			title += " · modboard"
		}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.rawf(`<title>%s</title>`, templ.EscapeString(title))
		h.raw(htmxScript)
		h.raw(`</head>`)
		h.rawf(`<body hx-boost="true" hx-headers='{"X-CSRF-Token": "%s"}'>`, attr(data.CSRFToken))

		h.raw(`<header class="topbar"><a class="brand" href="/">modboard</a>`)
		if data.UserID != "" {
			h.rawf(`<span class="operator">Signed in as <code>%s</code></span>`, templ.EscapeString(data.UserID))
			h.raw(`<form method="post" action="/logout" hx-boost="false">`)
			h.rawf(`<input type="hidden" name="csrf" value="%s">`, attr(data.CSRFToken))
			h.raw(`<button type="submit" class="btn-sm">Sign out</button></form>`)
		}
		h.raw(`</header>`)

		if len(data.Tabs) > 0 {
			h.raw(`<nav class="tabs" role="tablist">`)
			for _, tab := range data.Tabs {
				class := "tab"
				if tab.Active {
					class += " active"
				}
				h.rawf(`<a id="tab-%s" class="%s" role="tab" href="%s" aria-selected="%t">`,
					attr(tab.Key), class, urlAttr(tab.Href), tab.Active)
				h.text(tab.Label)
				if tab.Badge != "" {
					h.rawf(` <span class="badge">%s</span>`, templ.EscapeString(tab.Badge))
				}
				h.raw(`</a>`)
			}
			h.raw(`</nav>`)
		}

		if data.RefreshAlert != nil {
			writeAlert(h, data.RefreshAlert)
		}
		if data.Toast != nil {
			h.rawf(`<div id="toast" class="toast toast-%s" role="status">`, attr(data.Toast.Category))
			h.rawf(`<strong>%s</strong>`, templ.EscapeString(data.Toast.Title))
			if data.Toast.Description != "" {
				h.rawf(`<p>%s</p>`, templ.EscapeString(data.Toast.Description))
			}
			h.raw(`</div>`)
		}

		h.raw(`<main id="main">`)
		h.render(ctx, body)
		h.raw(`</main>`)
		if data.RefreshedAt != "" {
			h.rawf(`<footer class="muted">Last refreshed %s</footer>`, templ.EscapeString(data.RefreshedAt))
		}
		h.raw(`</body></html>`)
	})
}

func writeAlert(h *htmlWriter, alert *viewmodels.AlertBanner) {
	h.raw(`<div id="refresh-alert" class="alert alert-warning" role="alert">`)
	h.rawf(`<strong>%s</strong>`, templ.EscapeString(alert.Title))
	if alert.Message != "" {
		h.rawf(`<p>%s</p>`, templ.EscapeString(alert.Message))
	}
	if len(alert.Items) > 0 {
		h.raw(`<ul>`)
		for _, item := range alert.Items {
			h.rawf(`<li>%s</li>`, templ.EscapeString(item))
		}
		h.raw(`</ul>`)
	}
	h.raw(`</div>`)
}
