package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/dashboard"
	"github.com/modboard/modboard/internal/http/views"
)

// HandleQuestionsPost edits the question draft for one application type.
// Actions: add, remove:<index>, save, reset. Any other action keeps the
// submitted text as the draft.
func (h *Handlers) HandleQuestionsPost(c *echo.Context) error {
	ctx := c.Request().Context()
	qtype := strings.ToLower(strings.TrimSpace(c.Param("type")))
	if !botapi.IsQuestionType(qtype) {
		return RenderNotFound(c)
	}
	if err := c.Request().ParseForm(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := c.Request().PostForm
	location := views.TabURL(dashboard.TabQuestions.String())

	action := strings.ToLower(strings.TrimSpace(form.Get("action")))
	if action == "reset" {
		h.clearQuestionsDraft(ctx, qtype)
		setFlashToast(c, infoToast("Changes discarded"))
		return redirect(c, location)
	}

	draft := h.currentQuestions(ctx, h.Dashboard.Snapshot(), qtype)
	submitted, posted := form["questions"]
	switch {
	case len(submitted) == len(draft):
		for i, text := range submitted {
			draft = dashboard.UpdateQuestion(draft, i, text)
		}
	case posted:
		draft = slices.Clone(submitted)
	}

	switch {
	case action == "add":
		draft = dashboard.AddQuestion(draft)
	case action == "remove" || strings.HasPrefix(action, "remove:"):
		raw := strings.TrimPrefix(strings.TrimPrefix(action, "remove"), ":")
		if raw == "" {
			raw = form.Get("index")
		}
		i, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid question index")
		}
		draft = dashboard.RemoveQuestion(draft, i)
	case action == "save":
		saved, err := h.Dashboard.SaveQuestions(ctx, qtype, draft)
		if err != nil {
			h.putQuestionsDraft(ctx, qtype, draft)
			toastFailure(c, "Could not save questions", err)
			return redirect(c, location)
		}
		h.clearQuestionsDraft(ctx, qtype)
		toastSuccess(c, "Questions saved", fmt.Sprintf("%s now has %d questions.", questionLabels[qtype], len(saved)))
		return redirect(c, location)
	}

	h.putQuestionsDraft(ctx, qtype, draft)
	return redirect(c, location)
}
