package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"astra/internal/chat"
	"astra/internal/domain/car"
	"astra/internal/repository"

	"github.com/google/uuid"
)

type ChatInput struct {
	SessionID string
	CarID     uuid.UUID // optional car context
	Message   string
}

type ChatReply struct {
	SessionID      string   `json:"session_id"`
	Response       string   `json:"response"`
	ModelUsed      string   `json:"model_used"`
	Confidence     float64  `json:"confidence"`
	QueryTypes     []string `json:"query_types"`
	ResponseTimeMS int64    `json:"response_time_ms"`
}

type ChatUsecase interface {
	Chat(ctx context.Context, in ChatInput) (ChatReply, error)
	Metrics() chat.Metrics
	ForceModel(name string) error
}

type ChatService struct {
	router *chat.Router
	memory chat.MemoryStore
	cars   repository.CarRepository
	logger *log.Logger
}

func NewChatUsecase(router *chat.Router, memory chat.MemoryStore, cars repository.CarRepository, logger *log.Logger) *ChatService {
	return &ChatService{router: router, memory: memory, cars: cars, logger: logger}
}

func (u *ChatService) Chat(ctx context.Context, in ChatInput) (ChatReply, error) {
	in.Message = strings.TrimSpace(in.Message)
	if in.Message == "" {
		return ChatReply{}, ErrInvalidInput
	}
	if in.SessionID = strings.TrimSpace(in.SessionID); in.SessionID == "" {
		in.SessionID = uuid.NewString()
	}

	var subject *car.Car
	if in.CarID != uuid.Nil {
		c, err := u.cars.GetByID(ctx, in.CarID)
		if err != nil {
			if errors.Is(err, repository.ErrCarNotFound) {
				return ChatReply{}, ErrCarNotFound
			}
			return ChatReply{}, ErrInternal
		}
		subject = &c
	}

	var history []chat.Message
	if u.memory != nil {
		h, err := u.memory.History(ctx, in.SessionID)
		if err != nil && u.logger != nil {
			u.logger.Printf("[Chat] history fetch failed session=%s: %v", in.SessionID, err)
		}
		history = h
	}

	reply, err := u.router.Route(ctx, in.Message, subject, history)
	if err != nil {
		if errors.Is(err, chat.ErrNoBackend) {
			return ChatReply{}, ErrChatUnavailable
		}
		if u.logger != nil {
			u.logger.Printf("[Chat] routing failed session=%s: %v", in.SessionID, err)
		}
		return ChatReply{}, ErrChatUnavailable
	}

	if u.memory != nil {
		if err := u.memory.Append(ctx, in.SessionID,
			chat.Message{Role: "user", Content: in.Message},
			chat.Message{Role: "assistant", Content: reply.Response},
		); err != nil && u.logger != nil {
			u.logger.Printf("[Chat] history append failed session=%s: %v", in.SessionID, err)
		}
	}

	return ChatReply{
		SessionID:      in.SessionID,
		Response:       reply.Response,
		ModelUsed:      reply.ModelUsed,
		Confidence:     reply.Confidence,
		QueryTypes:     reply.QueryTypes,
		ResponseTimeMS: reply.ResponseTimeMS,
	}, nil
}

func (u *ChatService) Metrics() chat.Metrics {
	return u.router.Metrics()
}

func (u *ChatService) ForceModel(name string) error {
	if err := u.router.ForceModel(name); err != nil {
		return ErrInvalidInput
	}
	return nil
}

var _ ChatUsecase = (*ChatService)(nil)
