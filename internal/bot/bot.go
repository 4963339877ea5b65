package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/connorkuehl/pointsbot/internal/command"
	"github.com/connorkuehl/pointsbot/internal/discord"
	"github.com/connorkuehl/pointsbot/internal/points"

	log "github.com/sirupsen/logrus"
)

type Session interface {
	Interactions() <-chan discord.Interaction
	Respond(in discord.Interaction, rsp discord.Response) error
	SendDirectMessage(userID string, embed discord.Embed) error
	RegisterCommands(defs []discord.CommandDefinition) error
}

type DB interface {
	Load(ctx context.Context) points.Document
	Update(ctx context.Context, fn func(doc *points.Document) error) error
}

type CommandRouter interface {
	Route(in discord.Interaction) command.ArgParser
}

type Bot struct {
	discord Session
	db      DB
	router  CommandRouter

	// outstanding best-effort direct messages
	notifications sync.WaitGroup
}

func New(discord Session, db DB, router CommandRouter) *Bot {
	return &Bot{
		discord: discord,
		db:      db,
		router:  router,
	}
}

// Listen registers the slash commands and then handles interactions one at a
// time until ctx is done or the session stops delivering them.
func (b *Bot) Listen(ctx context.Context) error {
	defer b.notifications.Wait()

	if err := b.discord.RegisterCommands(command.Definitions()); err != nil {
		log.WithError(err).Error("register commands")
	} else {
		log.Info("registered global commands")
	}

	interactions := b.discord.Interactions()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-interactions:
			if !ok {
				return errors.New("discord interaction stream closed")
			}

			b.handle(ctx, in)
		}
	}
}
