package network

// Wire message IDs. Client-to-server actions sit in the 1xx range,
// server-to-client notifications in the 3xx range.
const (
	MsgTypeHeartbeat = 1

	MsgTypeCreateRoom     = 101
	MsgTypeJoinRoom       = 102
	MsgTypeLeaveRoom      = 103
	MsgTypeSelectSecret   = 104
	MsgTypeAskQuestion    = 105
	MsgTypeAnswerQuestion = 106
	MsgTypeMakeGuess      = 107
	MsgTypeRequestRematch = 108

	MsgTypeRoomUpdated     = 301
	MsgTypeTurnChanged     = 302
	MsgTypeCardsEliminated = 303
	MsgTypeGameOver        = 304
	MsgTypeRematchStarted  = 305
	MsgTypeError           = 399
)
