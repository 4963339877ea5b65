package discordtest

import (
	"sync"

	"github.com/connorkuehl/pointsbot/internal/discord"
)

type Reply struct {
	InteractionID string
	Response      discord.Response
}

type DirectMessage struct {
	UserID string
	Embed  discord.Embed
}

// ResponseRecorder stands in for a Discord session. It replays a fixed list
// of interactions and records everything the bot sends back.
type ResponseRecorder struct {
	mu             sync.Mutex
	Replies        []Reply
	DirectMessages []DirectMessage
	Registered     []discord.CommandDefinition

	// Errors returned from the matching calls when set.
	RespondErr  error
	DMErr       error
	RegisterErr error

	interactions []discord.Interaction
}

func NewResponseRecorder(interactions []discord.Interaction) *ResponseRecorder {
	return &ResponseRecorder{interactions: interactions}
}

func (r *ResponseRecorder) Interactions() <-chan discord.Interaction {
	ch := make(chan discord.Interaction, len(r.interactions))
	for _, in := range r.interactions {
		ch <- in
	}
	close(ch)
	return ch
}

func (r *ResponseRecorder) Respond(in discord.Interaction, rsp discord.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.RespondErr != nil {
		return r.RespondErr
	}
	r.Replies = append(r.Replies, Reply{InteractionID: in.ID, Response: rsp})
	return nil
}

func (r *ResponseRecorder) SendDirectMessage(userID string, embed discord.Embed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.DMErr != nil {
		return r.DMErr
	}
	r.DirectMessages = append(r.DirectMessages, DirectMessage{UserID: userID, Embed: embed})
	return nil
}

func (r *ResponseRecorder) RegisterCommands(defs []discord.CommandDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.RegisterErr != nil {
		return r.RegisterErr
	}
	r.Registered = append(r.Registered, defs...)
	return nil
}

// Contents returns the content of every recorded reply in order.
func (r *ResponseRecorder) Contents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var contents []string
	for _, reply := range r.Replies {
		contents = append(contents, reply.Response.Content)
	}
	return contents
}
