package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/capitalize-ai/faq-chatbot/internal/model"
)

const (
	// StreamName is the name of the chat activity stream.
	StreamName = "CHATBOT"

	// SubjectPrefix is the prefix for all chat subjects.
	SubjectPrefix = "chat"
)

// Publisher is the subset of JetStream used to publish chat activity.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// StreamManager handles JetStream stream operations.
type StreamManager struct {
	client *Client
	pub    Publisher
}

// NewStreamManager creates a new stream manager.
func NewStreamManager(client *Client) *StreamManager {
	return &StreamManager{client: client, pub: client.JetStream()}
}

// NewStreamManagerWithPublisher creates a stream manager that publishes via pub.
// EnsureStream is unavailable on managers created this way.
func NewStreamManagerWithPublisher(pub Publisher) *StreamManager {
	return &StreamManager{pub: pub}
}

// EnsureStream ensures the chat stream exists with proper configuration.
func (m *StreamManager) EnsureStream(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("stream manager has no JetStream client")
	}
	js := m.client.JetStream()

	if _, err := js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		MaxBytes:    10 * 1024 * 1024 * 1024,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Chat messages and history events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

var subjectReplacer = strings.NewReplacer(
	".", "_",
	"*", "_",
	">", "_",
	" ", "_",
	"\t", "_",
	"\r", "_",
	"\n", "_",
)

// SubjectToken turns an arbitrary user id into a single subject token.
func SubjectToken(userID string) string {
	if userID == "" {
		return "_"
	}
	return subjectReplacer.Replace(userID)
}

// MessageSubject returns the subject for a chat message.
func MessageSubject(userID string, role model.Role) string {
	return fmt.Sprintf("%s.%s.msg.%s", SubjectPrefix, SubjectToken(userID), role)
}

// EventSubject returns the subject for a chat event.
func EventSubject(userID string, eventType model.EventType) string {
	return fmt.Sprintf("%s.%s.event.%s", SubjectPrefix, SubjectToken(userID), eventType)
}

// PublishMessage publishes a chat message to JetStream.
func (m *StreamManager) PublishMessage(ctx context.Context, msg *model.ChatMessage) (uint64, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal message: %w", err)
	}

	ack, err := m.pub.Publish(ctx, MessageSubject(msg.UserID, msg.Role()), data)
	if err != nil {
		return 0, fmt.Errorf("failed to publish message: %w", err)
	}

	return ack.Sequence, nil
}

// PublishEvent publishes a chat event to JetStream.
func (m *StreamManager) PublishEvent(ctx context.Context, event *model.ChatEvent) (uint64, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := m.pub.Publish(ctx, EventSubject(event.UserID, event.Type), data)
	if err != nil {
		return 0, fmt.Errorf("failed to publish event: %w", err)
	}

	return ack.Sequence, nil
}
