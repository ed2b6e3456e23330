package ports

// ReplyContext identifies the player interaction that triggered a command,
// so acknowledgments land in the right place.
type ReplyContext struct {
	GameID   string
	PlayerID string
}

// Dispatcher delivers user-facing text. Fire-and-forget: implementations log
// failures and never surface them to the simulation.
type Dispatcher interface {
	Send(gameID, channel, text string)
	Reply(rctx ReplyContext, text string)
}

// Channel keys used by the core.
const (
	ChannelEvents = "events"
	ChannelSystem = "system"
)
