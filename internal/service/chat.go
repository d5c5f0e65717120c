// Package service provides business logic for the FAQ chatbot.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/capitalize-ai/faq-chatbot/internal/faq"
	"github.com/capitalize-ai/faq-chatbot/internal/model"
	"github.com/capitalize-ai/faq-chatbot/pkg/logger"
	"github.com/capitalize-ai/faq-chatbot/pkg/metrics"
)

// ErrEmptyUser is returned when an operation is called without a user id.
var ErrEmptyUser = errors.New("user id is required")

// DocumentLoader supplies the current FAQ document.
type DocumentLoader interface {
	Load(ctx context.Context) (*model.FAQDocument, error)
}

// MessageStore persists chat messages.
type MessageStore interface {
	Create(ctx context.Context, userID, message string, isBot bool) (*model.ChatMessage, error)
	ListByUser(ctx context.Context, userID string) ([]model.ChatMessage, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// EventPublisher receives chat activity for downstream consumers.
type EventPublisher interface {
	PublishMessage(ctx context.Context, msg *model.ChatMessage) (uint64, error)
	PublishEvent(ctx context.Context, event *model.ChatEvent) (uint64, error)
}

// ChatService handles chat operations for a single acting user per call.
type ChatService struct {
	loader    DocumentLoader
	store     MessageStore
	publisher EventPublisher
	logger    *logger.Logger
	tracer    trace.Tracer
}

// NewChatService creates a new chat service. publisher may be nil.
func NewChatService(loader DocumentLoader, store MessageStore, publisher EventPublisher, log *logger.Logger) *ChatService {
	return &ChatService{
		loader:    loader,
		store:     store,
		publisher: publisher,
		logger:    log,
		tracer:    otel.Tracer("github.com/capitalize-ai/faq-chatbot/internal/service"),
	}
}

// Index returns the FAQ document and the user's history, seeding the
// greeting message when the history is empty.
func (s *ChatService) Index(ctx context.Context, userID string) (view *model.ChatView, err error) {
	ctx, span := s.startSpan(ctx, "ChatService.Index", userID)
	defer func() { endSpan(span, err) }()

	if userID == "" {
		return nil, ErrEmptyUser
	}

	doc, err := s.loadDocument(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		greeting, err := s.store.Create(ctx, userID, doc.InitialMessage, true)
		if err != nil {
			return nil, fmt.Errorf("failed to store greeting: %w", err)
		}
		metrics.RecordMessage(string(model.RoleBot))
		s.publishMessage(ctx, greeting)

		messages, err = s.store.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	return &model.ChatView{
		FAQData:  doc,
		Messages: messages,
	}, nil
}

// Submit stores the user's message, answers it from the FAQ document and
// stores the reply.
func (s *ChatService) Submit(ctx context.Context, userID, message string) (result *model.SubmitResult, err error) {
	ctx, span := s.startSpan(ctx, "ChatService.Submit", userID)
	defer func() { endSpan(span, err) }()

	if userID == "" {
		return nil, ErrEmptyUser
	}

	doc, err := s.loadDocument(ctx)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.store.Create(ctx, userID, message, false)
	if err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}
	metrics.RecordMessage(string(model.RoleUser))
	s.publishMessage(ctx, userMsg)

	matched, kind := faq.Match(message, doc.FAQDatabase)
	metrics.RecordMatch(string(kind))
	span.SetAttributes(attribute.String("faq.match", string(kind)))

	reply := faq.ComposeReply(message, matched, doc)

	botMsg, err := s.store.Create(ctx, userID, reply.Text, true)
	if err != nil {
		return nil, fmt.Errorf("failed to store bot reply: %w", err)
	}
	metrics.RecordMessage(string(model.RoleBot))
	s.publishMessage(ctx, botMsg)

	s.logger.Debug("message answered",
		zap.String("user_id", userID),
		zap.String("match", string(kind)),
		zap.Int("quick_replies", len(reply.QuickReplies)),
	)

	return &model.SubmitResult{
		UserMessage:  userMsg,
		BotReply:     botMsg,
		QuickReplies: reply.QuickReplies,
	}, nil
}

// Clear deletes every message of the user and returns how many were removed.
func (s *ChatService) Clear(ctx context.Context, userID string) (deleted int64, err error) {
	ctx, span := s.startSpan(ctx, "ChatService.Clear", userID)
	defer func() { endSpan(span, err) }()

	if userID == "" {
		return 0, ErrEmptyUser
	}

	deleted, err = s.store.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	metrics.RecordClear(deleted)
	span.SetAttributes(attribute.Int64("chat.deleted", deleted))

	if s.publisher != nil {
		event := &model.ChatEvent{
			ID:        uuid.Must(uuid.NewV7()).String(),
			UserID:    userID,
			Type:      model.EventTypeCleared,
			Deleted:   deleted,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := s.publisher.PublishEvent(ctx, event); err != nil {
			metrics.EventPublishFailuresTotal.WithLabelValues("event").Inc()
			s.logger.Warn("failed to publish history cleared event",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("chat history cleared",
		zap.String("user_id", userID),
		zap.Int64("deleted", deleted),
	)

	return deleted, nil
}

func (s *ChatService) loadDocument(ctx context.Context) (*model.FAQDocument, error) {
	doc, err := s.loader.Load(ctx)
	if err != nil {
		metrics.FAQLoadFailuresTotal.Inc()
		return nil, fmt.Errorf("failed to load faq document: %w", err)
	}
	return doc, nil
}

func (s *ChatService) publishMessage(ctx context.Context, msg *model.ChatMessage) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.PublishMessage(ctx, msg); err != nil {
		metrics.EventPublishFailuresTotal.WithLabelValues("message").Inc()
		s.logger.Warn("failed to publish chat message",
			zap.String("user_id", msg.UserID),
			zap.Int64("message_id", msg.ID),
			zap.Error(err),
		)
	}
}

func (s *ChatService) startSpan(ctx context.Context, name, userID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("user.id", userID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
