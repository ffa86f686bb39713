package utils

const (
	// Request statuses
	StatusPending         = "pending"
	StatusCountered       = "countered"
	StatusPrimaryAccepted = "primary_accepted"
	StatusFeePaid         = "fee_paid"
	StatusDeclined        = "declined"
	StatusCompleted       = "completed"

	// Transition actions
	ActionAccept       = "accept"
	ActionDecline      = "decline"
	ActionCounter      = "counter"
	ActionPayFee       = "pay_fee"
	ActionMarkComplete = "mark_complete"

	// Trip statuses
	TripStatusActive    = "active"
	TripStatusCompleted = "completed"

	// User roles
	RoleTraveler = "traveler"
	RoleSender   = "sender"

	// Chat delivery statuses
	DeliverySent      = "sent"
	DeliveryDelivered = "delivered"
	DeliveryRead      = "read"

	// Flat platform fee that unlocks chat, distinct from the carrying price
	CommunicationFee = 5.00

	// Share code generation
	CodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength  = 6

	// HTTP status messages
	ErrInvalidRequest  = "Invalid request"
	ErrTripNotFound    = "Trip not found"
	ErrRequestNotFound = "Request not found"
	ErrMessageNotFound = "Message not found"

	// Precision for monetary calculations
	MoneyPrecision = 100.0
)
