package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"
)

type senderStub struct {
	sent []*telego.SendMessageParams
	err  error
}

func (s *senderStub) SendMessage(_ context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	if s.err != nil {
		return nil, s.err
	}

	s.sent = append(s.sent, params)

	return &telego.Message{MessageID: len(s.sent)}, nil
}

func TestTelegramBot_SendHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		chatID  int64
		stub    *senderStub
		wantErr error
		wantOut int
	}{
		{name: "sent", chatID: 42, stub: &senderStub{}, wantOut: 1},
		{name: "no chat", chatID: 0, stub: &senderStub{}, wantErr: ErrChatNotConfigured},
		{name: "api error", chatID: 42, stub: &senderStub{err: errors.New("telego: 403 bot was blocked")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rq := require.New(t)

			err := NewTelegramBot(tt.stub, tt.chatID).SendHTML(context.Background(), "<b>hi</b>")

			switch {
			case tt.wantErr != nil:
				rq.ErrorIs(err, tt.wantErr)
			case tt.stub.err != nil:
				rq.ErrorIs(err, tt.stub.err)
			default:
				rq.NoError(err)
			}

			rq.Len(tt.stub.sent, tt.wantOut)

			if tt.wantOut > 0 {
				msg := tt.stub.sent[0]
				rq.Equal(int64(42), msg.ChatID.ID)
				rq.Equal(telego.ModeHTML, msg.ParseMode)
				rq.Equal("<b>hi</b>", msg.Text)
			}
		})
	}
}

func TestNewBot_InvalidToken(t *testing.T) {
	t.Parallel()

	_, err := NewBot("not-a-token", nil)
	require.Error(t, err)
}
