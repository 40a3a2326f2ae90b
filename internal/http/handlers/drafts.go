package handlers

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/modboard/modboard/internal/botapi"
	"github.com/modboard/modboard/internal/dashboard"
)

// Drafts live in the operator session as JSON strings until they are saved or
// discarded. They are never written into the shared snapshot.
const (
	sessionKeySettingsDraft        = "draft_settings"
	sessionKeyQuestionsDraftPrefix = "draft_questions_"
)

func (h *Handlers) settingsDraft(ctx context.Context) (botapi.Settings, bool) {
	var draft botapi.Settings
	if !h.loadDraft(ctx, sessionKeySettingsDraft, &draft) {
		return nil, false
	}
	return draft, true
}

func (h *Handlers) putSettingsDraft(ctx context.Context, draft botapi.Settings) {
	h.storeDraft(ctx, sessionKeySettingsDraft, draft)
}

func (h *Handlers) clearSettingsDraft(ctx context.Context) {
	h.Sessions.Remove(ctx, sessionKeySettingsDraft)
}

func (h *Handlers) questionsDraft(ctx context.Context, qtype string) ([]string, bool) {
	var draft []string
	if !h.loadDraft(ctx, sessionKeyQuestionsDraftPrefix+qtype, &draft) {
		return nil, false
	}
	if draft == nil {
		draft = []string{}
	}
	return draft, true
}

func (h *Handlers) putQuestionsDraft(ctx context.Context, qtype string, draft []string) {
	if draft == nil {
		draft = []string{}
	}
	h.storeDraft(ctx, sessionKeyQuestionsDraftPrefix+qtype, draft)
}

func (h *Handlers) clearQuestionsDraft(ctx context.Context, qtype string) {
	h.Sessions.Remove(ctx, sessionKeyQuestionsDraftPrefix+qtype)
}

// currentSettings is the operator's draft, or a copy of the canonical
// settings when there is none.
func (h *Handlers) currentSettings(ctx context.Context, snap *dashboard.Snapshot) botapi.Settings {
	if draft, ok := h.settingsDraft(ctx); ok {
		return draft
	}
	return snap.Settings.Clone()
}

func (h *Handlers) currentQuestions(ctx context.Context, snap *dashboard.Snapshot, qtype string) []string {
	if draft, ok := h.questionsDraft(ctx, qtype); ok {
		return draft
	}
	return slices.Clone(snap.Questions[qtype])
}

func (h *Handlers) loadDraft(ctx context.Context, key string, dst any) bool {
	if h.Sessions == nil {
		return false
	}
	raw := h.Sessions.GetString(ctx, key)
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		h.Sessions.Remove(ctx, key)
		return false
	}
	return true
}

func (h *Handlers) storeDraft(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.Sessions.Put(ctx, key, string(raw))
}
