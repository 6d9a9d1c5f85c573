package middleware_test

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"buyback/internal/transport/bot/middleware"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	const adminChat int64 = -100500

	tc := []struct {
		name   string
		update telego.Update
		chatID int64
		want   bool
	}{
		{
			name:   "admin chat",
			update: telego.Update{Message: &telego.Message{Chat: telego.Chat{ID: adminChat}}},
			chatID: adminChat,
			want:   true,
		},
		{
			name:   "foreign chat",
			update: telego.Update{Message: &telego.Message{Chat: telego.Chat{ID: 42}}},
			chatID: adminChat,
		},
		{
			name:   "message without sender",
			update: telego.Update{Message: &telego.Message{Chat: telego.Chat{ID: adminChat}, From: nil}},
			chatID: adminChat,
			want:   true,
		},
		{
			name:   "no message",
			update: telego.Update{CallbackQuery: &telego.CallbackQuery{}},
			chatID: adminChat,
		},
		{
			name:   "chat not configured",
			update: telego.Update{Message: &telego.Message{Chat: telego.Chat{ID: 0}}},
			chatID: 0,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			r.Equal(tt.want, middleware.Allowed(tt.update, tt.chatID))
		})
	}
}
