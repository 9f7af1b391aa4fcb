package usecase

import (
	"context"
	"errors"
	"testing"

	"astra/internal/chat"

	"github.com/google/uuid"
)

func newTestChat(client *mockCompletion, cars *mockCarRepo) *ChatService {
	router := chat.NewRouter(client, nil, chat.ModelRemote, nil)
	return NewChatUsecase(router, chat.NewInProcessMemoryStore(), cars, nil)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	u := newTestChat(&mockCompletion{reply: "hi"}, &mockCarRepo{})

	if _, err := u.Chat(context.Background(), ChatInput{Message: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestChatAssignsSessionID(t *testing.T) {
	u := newTestChat(&mockCompletion{reply: "hello!"}, &mockCarRepo{})

	reply, err := u.Chat(context.Background(), ChatInput{Message: "hi"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.SessionID == "" {
		t.Fatal("SessionID empty, want generated")
	}
	if reply.ModelUsed != chat.ModelRemote {
		t.Fatalf("ModelUsed = %q, want %q", reply.ModelUsed, chat.ModelRemote)
	}
}

func TestChatUnknownCarContext(t *testing.T) {
	u := newTestChat(&mockCompletion{reply: "hello!"}, &mockCarRepo{cars: testCatalog()})

	_, err := u.Chat(context.Background(), ChatInput{Message: "is it fast?", CarID: uuid.New()})
	if !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("err = %v, want ErrCarNotFound", err)
	}
}

func TestChatKeepsSessionHistory(t *testing.T) {
	client := &mockCompletion{reply: "answer"}
	u := newTestChat(client, &mockCarRepo{})
	ctx := context.Background()

	first, err := u.Chat(ctx, ChatInput{Message: "tell me about sedans"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if _, err := u.Chat(ctx, ChatInput{SessionID: first.SessionID, Message: "which is cheapest?"}); err != nil {
		t.Fatalf("Chat follow-up: %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("completion calls = %d, want 2", client.calls)
	}

	m := u.Metrics()
	if m.RemoteRequests != 2 {
		t.Fatalf("RemoteRequests = %d, want 2", m.RemoteRequests)
	}
}

func TestChatUnavailableWithoutBackends(t *testing.T) {
	router := chat.NewRouter(nil, nil, chat.ModelRemote, nil)
	u := NewChatUsecase(router, chat.NewInProcessMemoryStore(), &mockCarRepo{}, nil)

	if _, err := u.Chat(context.Background(), ChatInput{Message: "hi"}); !errors.Is(err, ErrChatUnavailable) {
		t.Fatalf("err = %v, want ErrChatUnavailable", err)
	}
}

func TestChatForceModelValidation(t *testing.T) {
	u := newTestChat(&mockCompletion{reply: "ok"}, &mockCarRepo{})

	if err := u.ForceModel("gpt-9"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if err := u.ForceModel(chat.ModelRemote); err != nil {
		t.Fatalf("ForceModel: %v", err)
	}
}
