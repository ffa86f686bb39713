// services/chat_service.go
package services

import (
	"errors"
	"strings"

	"github.com/baseelze-maker/wasel-backend/models"
	"github.com/baseelze-maker/wasel-backend/repository"
	"github.com/baseelze-maker/wasel-backend/utils"
)

// ChatService handles the per-request message thread. Writing is gated on
// the communication fee: a thread opens at fee_paid and stays open through
// completed.
type ChatService struct {
	chats    ChatStore
	requests RequestStore
	trips    TripStore
}

// NewChatService creates a new chat service
func NewChatService(chats ChatStore, requests RequestStore, trips TripStore) *ChatService {
	return &ChatService{chats: chats, requests: requests, trips: trips}
}

// Send appends a message to a request's thread
func (s *ChatService) Send(requestID, senderID, text string) (*models.ChatMessage, error) {
	if err := utils.ValidateRequired(text, "text"); err != nil {
		return nil, err
	}

	req, trip, err := s.loadThread(requestID)
	if err != nil {
		return nil, err
	}
	if senderID != req.RequesterID && senderID != trip.OwnerID {
		return nil, utils.NewUnauthorizedError("only the sender and the traveler can use this chat")
	}
	if req.Status != utils.StatusFeePaid && req.Status != utils.StatusCompleted {
		return nil, utils.NewChannelLockedError()
	}

	msg := models.NewChatMessage(requestID, senderID, strings.TrimSpace(text))
	if err := s.chats.StoreMessage(msg); err != nil {
		return nil, utils.NewInternalError("Failed to store message")
	}
	return msg, nil
}

// History returns a request's thread, oldest first. Reading requires being
// a participant but not an unlocked channel, so both sides can re-fetch a
// thread after completion.
func (s *ChatService) History(requestID, actorID string) ([]models.ChatMessage, error) {
	req, trip, err := s.loadThread(requestID)
	if err != nil {
		return nil, err
	}
	if actorID != req.RequesterID && actorID != trip.OwnerID {
		return nil, utils.NewUnauthorizedError("only the sender and the traveler can view this chat")
	}

	messages, err := s.chats.GetMessagesByRequest(requestID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve messages")
	}
	return messages, nil
}

// MarkDelivered advances a message to delivered. Advisory UI state: the
// counterparty reports it, stale updates are ignored rather than rejected.
func (s *ChatService) MarkDelivered(messageID, actorID string) error {
	return s.advanceDelivery(messageID, actorID, utils.DeliveryDelivered)
}

// MarkRead advances a message to read
func (s *ChatService) MarkRead(messageID, actorID string) error {
	return s.advanceDelivery(messageID, actorID, utils.DeliveryRead)
}

func (s *ChatService) advanceDelivery(messageID, actorID, status string) error {
	msg, err := s.chats.GetMessageByID(messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError("Message")
		}
		return utils.NewInternalError("Failed to retrieve message")
	}

	req, trip, err := s.loadThread(msg.RequestID)
	if err != nil {
		return err
	}
	if actorID != req.RequesterID && actorID != trip.OwnerID {
		return utils.NewUnauthorizedError("only the sender and the traveler can use this chat")
	}
	if actorID == msg.SenderID {
		return utils.NewUnauthorizedError("delivery status is reported by the recipient")
	}

	// sent -> delivered -> read, never backwards
	if msg.DeliveryStatus == utils.DeliveryRead {
		return nil
	}
	if status == utils.DeliveryDelivered && msg.DeliveryStatus != utils.DeliverySent {
		return nil
	}

	if err := s.chats.UpdateDeliveryStatus(messageID, status); err != nil {
		return utils.NewInternalError("Failed to update delivery status")
	}
	return nil
}

func (s *ChatService) loadThread(requestID string) (*models.Request, *models.Trip, error) {
	req, err := s.requests.GetRequestByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, utils.NewNotFoundError("Request")
		}
		return nil, nil, utils.NewInternalError("Failed to retrieve request")
	}
	trip, err := s.trips.GetTripByID(req.TripID)
	if err != nil {
		return nil, nil, utils.NewInternalError("Failed to retrieve trip")
	}
	return req, trip, nil
}
