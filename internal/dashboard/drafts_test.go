package dashboard

import (
	"testing"

	"github.com/modboard/modboard/internal/botapi"
	"github.com/stretchr/testify/require"
)

func TestQuestionDraftOpsDoNotAliasInput(t *testing.T) {
	t.Parallel()

	canonical := []string{"a", "b", "c"}

	added := AddQuestion(canonical)
	require.Equal(t, []string{"a", "b", "c", ""}, added)

	updated := UpdateQuestion(canonical, 1, "B")
	require.Equal(t, []string{"a", "B", "c"}, updated)

	removed := RemoveQuestion(canonical, 0)
	require.Equal(t, []string{"b", "c"}, removed)

	require.Equal(t, []string{"a", "b", "c"}, canonical)
}

func TestQuestionDraftOpsIgnoreOutOfRange(t *testing.T) {
	t.Parallel()

	qs := []string{"only"}
	require.Equal(t, qs, UpdateQuestion(qs, 5, "x"))
	require.Equal(t, qs, UpdateQuestion(qs, -1, "x"))
	require.Equal(t, qs, RemoveQuestion(qs, 1))
	require.Equal(t, []string{""}, AddQuestion(nil))
	require.Empty(t, RemoveQuestion(nil, 0))
}

func TestEditSettingsOnlyTouchesKnownKeys(t *testing.T) {
	t.Parallel()

	canonical := botapi.Settings{botapi.SettingStaffRoleID: "1", "custom": "keep"}
	draft := EditSettings(canonical, map[string]string{
		botapi.SettingStaffRoleID:    "2",
		botapi.SettingWelcomeMessage: "hi",
		"injected":                   "nope",
	})

	require.Equal(t, botapi.Settings{
		botapi.SettingStaffRoleID:    "2",
		botapi.SettingWelcomeMessage: "hi",
		"custom":                     "keep",
	}, draft)
	require.Equal(t, "1", canonical[botapi.SettingStaffRoleID])
	require.NotNil(t, EditSettings(nil, nil))
}
