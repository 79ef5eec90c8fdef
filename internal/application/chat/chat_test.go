package chat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appchat "github.com/Zhima-Mochi/minishop-modules/internal/application/chat"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/chat"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/observabilitytest"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string { s.n++; return fmt.Sprintf("m%d", s.n) }

var sentAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sendCmd(t *testing.T, body string) appchat.SendMessageCommand {
	t.Helper()
	cmd, err := appchat.NewSendMessageCommand(appchat.SendMessageParams{ConversationID: "c1", SenderID: "u1", Body: body})
	require.NoError(t, err)
	return cmd
}

func TestNewSendMessageCommand(t *testing.T) {
	cmd := sendCmd(t, "hello")
	assert.Equal(t, "c1", cmd.ConversationID())
	assert.Equal(t, "hello", cmd.Body())

	_, err := appchat.NewSendMessageCommand(appchat.SendMessageParams{ConversationID: "c1", SenderID: "u1"})
	assert.Equal(t, failure.KindValidation, failure.KindOf(err))
	assert.Equal(t, failure.ModuleChat, failure.ModuleOf(err))
}

func TestNewListMessagesQuery_DefaultLimit(t *testing.T) {
	q, err := appchat.NewListMessagesQuery(appchat.ListMessagesParams{ConversationID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, appchat.DefaultHistoryLimit, q.Limit())

	_, err = appchat.NewListMessagesQuery(appchat.ListMessagesParams{ConversationID: "c1", Limit: 500})
	assert.Equal(t, failure.KindValidation, failure.KindOf(err))
}

func TestSendMessage_DeliveredToListener(t *testing.T) {
	repo := memory.NewMessageRepository()
	hub := memory.NewChatHub()
	ch, cancel, ok := hub.Listen("c1")
	require.True(t, ok)
	defer cancel()

	uc := appchat.NewSendMessage(repo, hub, &seqIDs{}, clockwork.NewFakeClockAt(sentAt), nil)
	dto, err := uc.Send(context.Background(), sendCmd(t, "hello"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, dto.Status)
	assert.Equal(t, sentAt, dto.SentAt)

	select {
	case m := <-ch:
		assert.Equal(t, "m1", m.ID)
	default:
		t.Fatal("listener did not receive message")
	}
}

func TestSendMessage_NoListenerLeavesPending(t *testing.T) {
	repo := memory.NewMessageRepository()
	rec := observabilitytest.New()
	uc := appchat.NewSendMessage(repo, memory.NewChatHub(), &seqIDs{}, clockwork.NewFakeClockAt(sentAt), rec)

	dto, err := uc.Execute(context.Background(), sendCmd(t, "anyone?"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, dto.Status)
	_, logged := rec.Find("chat_delivery_deferred")
	assert.True(t, logged)

	q, _ := appchat.NewListMessagesQuery(appchat.ListMessagesParams{ConversationID: "c1"})
	history, err := appchat.NewListMessages(repo).Execute(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "anyone?", history[0].Body)
}

func TestListMessages_KeepsMostRecent(t *testing.T) {
	repo := memory.NewMessageRepository()
	uc := appchat.NewSendMessage(repo, memory.NewChatHub(), &seqIDs{}, clockwork.NewFakeClockAt(sentAt), nil)
	for i := 0; i < 5; i++ {
		_, err := uc.Execute(context.Background(), sendCmd(t, fmt.Sprintf("msg %d", i)))
		require.NoError(t, err)
	}

	q, _ := appchat.NewListMessagesQuery(appchat.ListMessagesParams{ConversationID: "c1", Limit: 2})
	history, err := appchat.NewListMessages(repo).Execute(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "msg 3", history[0].Body)
	assert.Equal(t, "msg 4", history[1].Body)
}

type failingRepo struct{ domain.MessageRepository }

func (failingRepo) Save(context.Context, *domain.Message) error { return errors.New("disk full") }

func TestSendMessage_SaveFailure(t *testing.T) {
	uc := appchat.NewSendMessage(failingRepo{}, memory.NewChatHub(), &seqIDs{}, clockwork.NewFakeClockAt(sentAt), nil)
	_, err := uc.Execute(context.Background(), sendCmd(t, "x"))
	assert.Equal(t, failure.KindInfrastructure, failure.KindOf(err))
}

func TestSendMessage_DeliversBeforeSave(t *testing.T) {
	hub := memory.NewChatHub()
	ch, cancel, ok := hub.Listen("c1")
	require.True(t, ok)
	defer cancel()

	uc := appchat.NewSendMessage(failingRepo{}, hub, &seqIDs{}, clockwork.NewFakeClockAt(sentAt), nil)
	_, err := uc.Execute(context.Background(), sendCmd(t, "early"))
	assert.Equal(t, failure.KindInfrastructure, failure.KindOf(err))

	select {
	case m := <-ch:
		assert.Equal(t, "early", m.Body)
	default:
		t.Fatal("listener did not receive message")
	}
}
