// repository/chat_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/baseelze-maker/wasel-backend/models"
)

// ChatRepository handles database operations for request chat threads
type ChatRepository struct {
	DB *sql.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository() *ChatRepository {
	return &ChatRepository{
		DB: GetDB(),
	}
}

// StoreMessage saves a chat message
func (r *ChatRepository) StoreMessage(msg *models.ChatMessage) error {
	_, err := r.DB.Exec(
		`INSERT INTO chat_messages (id, request_id, sender_id, message, delivery_status, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.RequestID, msg.SenderID, msg.Text, msg.DeliveryStatus, msg.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %v", err)
	}
	return nil
}

// GetMessageByID retrieves a single chat message
func (r *ChatRepository) GetMessageByID(id string) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.DB.QueryRow(
		`SELECT id, request_id, sender_id, message, delivery_status, sent_at
		 FROM chat_messages WHERE id = $1`,
		id,
	).Scan(&msg.ID, &msg.RequestID, &msg.SenderID, &msg.Text, &msg.DeliveryStatus, &msg.SentAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat message: %v", err)
	}
	return &msg, nil
}

// GetMessagesByRequest retrieves a request's thread ordered by sent_at,
// with the insertion id as the tiebreaker.
func (r *ChatRepository) GetMessagesByRequest(requestID string) ([]models.ChatMessage, error) {
	rows, err := r.DB.Query(
		`SELECT id, request_id, sender_id, message, delivery_status, sent_at
		 FROM chat_messages
		 WHERE request_id = $1
		 ORDER BY sent_at ASC, id ASC`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat messages: %v", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		err := rows.Scan(&msg.ID, &msg.RequestID, &msg.SenderID, &msg.Text, &msg.DeliveryStatus, &msg.SentAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %v", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat messages: %v", err)
	}
	return messages, nil
}

// UpdateDeliveryStatus sets a message's delivery status. Best effort:
// callers treat this as advisory UI state, not correctness-critical.
func (r *ChatRepository) UpdateDeliveryStatus(id, status string) error {
	result, err := r.DB.Exec(
		"UPDATE chat_messages SET delivery_status = $2 WHERE id = $1",
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update delivery status: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update delivery status: %v", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
