package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgPlayCard, PlayCardPayload{Card: "CJ"})
	require.NoError(t, err)

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgPlayCard, decoded.Type)

	payload, err := ParsePayload[PlayCardPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "CJ", payload.Card)
}

func TestMessageWithoutPayload(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgPass, nil)
	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgPass, decoded.Type)
	assert.Empty(t, decoded.Payload)
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeBidNotHigher)
	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeBidNotHigher, payload.Code)
	assert.Equal(t, ErrorMessages[ErrCodeBidNotHigher], payload.Message)

	custom := NewErrorMessageWithText(ErrCodeUnknown, "boom")
	payload, err = ParsePayload[ErrorPayload](custom)
	require.NoError(t, err)
	assert.Equal(t, "boom", payload.Message)
}

func TestErrorMessagesCoverAllCodes(t *testing.T) {
	t.Parallel()

	codes := []int{
		ErrCodeUnknown, ErrCodeInvalidMsg, ErrCodeReconnectFail,
		ErrCodeTableNotFound, ErrCodeTableFull, ErrCodeNotAtTable,
		ErrCodeGameNotStart, ErrCodeNotYourTurn, ErrCodeIllegalCard,
		ErrCodeInvalidBid, ErrCodeBidNotHigher, ErrCodeNotDeclarer,
		ErrCodeInvalidDiscard, ErrCodeBidExceedsGame, ErrCodeWrongPhase,
		ErrCodeInvalidGame,
	}
	for _, code := range codes {
		assert.NotEmpty(t, ErrorMessages[code], "code %d", code)
	}
}
