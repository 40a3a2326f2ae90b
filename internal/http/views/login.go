package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/modboard/modboard/internal/http/viewmodels"
)

func LoginPage(data viewmodels.LoginViewData) templ.Component {
	body := component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="login card"><h1>Sign in</h1>`)
		if data.ErrorMessage != "" {
			h.rawf(`<div class="alert alert-danger" role="alert">%s</div>`, templ.EscapeString(data.ErrorMessage))
		}
		h.raw(`<form method="post" action="/login" hx-boost="false">`)
		h.rawf(`<input type="hidden" name="csrf" value="%s">`, attr(data.CSRFToken))
		if data.Next != "" {
			h.rawf(`<input type="hidden" name="next" value="%s">`, attr(data.Next))
		}
		h.raw(`<label for="user_id">Discord user ID</label>`)
		h.rawf(`<input id="user_id" name="user_id" inputmode="numeric" autocomplete="username" required value="%s">`, attr(data.UserID))
		h.raw(`<label for="password">Password</label>`)
		h.raw(`<input id="password" name="password" type="password" autocomplete="current-password" required>`)
		h.raw(`<button type="submit" class="btn-primary">Sign in</button>`)
		h.raw(`</form></section>`)
	})
	return Layout(viewmodels.LayoutData{
		Title:     "Sign in",
		CSRFToken: data.CSRFToken,
		Toast:     data.Toast,
	}, body)
}
