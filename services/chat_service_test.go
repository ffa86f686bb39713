package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baseelze-maker/wasel-backend/utils"
)

func TestSend_LockedUntilFeePaid(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)

	for _, status := range []string{
		utils.StatusPending, utils.StatusCountered,
		utils.StatusPrimaryAccepted, utils.StatusDeclined,
	} {
		req := f.seedRequest(t, trip, senderID, status, 2, 25)
		_, err := f.chatService.Send(req.ID, senderID, "hello")
		assertAppCode(t, err, "channel_locked")
	}
}

func TestSend_OpenForFeePaidAndCompleted(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)

	for _, status := range []string{utils.StatusFeePaid, utils.StatusCompleted} {
		req := f.seedRequest(t, trip, senderID, status, 2, 25)

		// Both participants can write.
		msg, err := f.chatService.Send(req.ID, senderID, "hi, where do we meet?")
		require.NoError(t, err)
		assert.Equal(t, utils.DeliverySent, msg.DeliveryStatus)

		_, err = f.chatService.Send(req.ID, travelerID, "airport arrivals hall")
		require.NoError(t, err)
	}
}

func TestSend_ParticipantsOnly(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusFeePaid, 2, 25)

	_, err := f.chatService.Send(req.ID, otherUserID, "hello")
	assertAppCode(t, err, "unauthorized")
}

func TestHistory_ReturnsThreadToBothSides(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusFeePaid, 2, 25)

	_, err := f.chatService.Send(req.ID, senderID, "first")
	require.NoError(t, err)
	_, err = f.chatService.Send(req.ID, travelerID, "second")
	require.NoError(t, err)

	for _, viewer := range []string{senderID, travelerID} {
		history, err := f.chatService.History(req.ID, viewer)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "first", history[0].Text)
		assert.Equal(t, "second", history[1].Text)
	}

	_, err = f.chatService.History(req.ID, otherUserID)
	assertAppCode(t, err, "unauthorized")
}

func TestDeliveryStatus_RecipientAdvancesItForward(t *testing.T) {
	f := newFixture()
	trip := f.seedTrip(t, travelerID, 10)
	req := f.seedRequest(t, trip, senderID, utils.StatusFeePaid, 2, 25)

	msg, err := f.chatService.Send(req.ID, senderID, "ping")
	require.NoError(t, err)

	// The author cannot report delivery of their own message.
	err = f.chatService.MarkDelivered(msg.ID, senderID)
	assertAppCode(t, err, "unauthorized")

	require.NoError(t, f.chatService.MarkDelivered(msg.ID, travelerID))
	stored, err := f.chats.GetMessageByID(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.DeliveryDelivered, stored.DeliveryStatus)

	require.NoError(t, f.chatService.MarkRead(msg.ID, travelerID))
	stored, err = f.chats.GetMessageByID(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.DeliveryRead, stored.DeliveryStatus)

	// A late delivered report does not regress a read message.
	require.NoError(t, f.chatService.MarkDelivered(msg.ID, travelerID))
	stored, err = f.chats.GetMessageByID(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.DeliveryRead, stored.DeliveryStatus)
}
