package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a match
	// with open seats.
	RpcQuickMatch = "quick_match"

	// MatchNameBigTwo is the authoritative match handler name registered with Nakama.
	MatchNameBigTwo = "bigtwo_match"

	// MatchLabelKeyOpenSeats is the label key advertising free seats.
	MatchLabelKeyOpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPlayCards int64 = 1
	OpPassTurn  int64 = 2

	// Server -> Client events
	OpPlayerJoined int64 = 101
	OpPlayerLeft   int64 = 102
	OpGameStarted  int64 = 103
	OpHandDealt    int64 = 104 // sent privately
	OpRoomEvent    int64 = 105 // engine.Event as JSON
	OpActionError  int64 = 106 // sent privately to the failed actor
)
