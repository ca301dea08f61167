package nakama

// MatchNameTienLen is the authoritative match handler name registered with Nakama.
const MatchNameTienLen = "tienlen_solo"

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame      int64 = 1
	OpPlayCards      int64 = 2
	OpPassTurn       int64 = 3
	OpRequestNewGame int64 = 4
	OpTogglePause    int64 = 5

	// Server -> Client events
	OpPlayerJoined int64 = 101
	OpPlayerLeft   int64 = 102
	OpGameStarted  int64 = 103
	OpHandDealt    int64 = 104 // sent privately
	OpCardPlayed   int64 = 105
	OpTurnPassed   int64 = 106
	OpGameEnded    int64 = 107
	OpGameReset    int64 = 108
	OpPauseToggled int64 = 109
	OpNotification int64 = 110
	OpStateChanged int64 = 111
)
