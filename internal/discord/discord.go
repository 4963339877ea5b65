package discord

import (
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger().WithFields(logrus.Fields{
	"component": "discord",
})

type Token string

func TokenFromEnv() (Token, error) {
	return tokenFromEnv(os.Getenv)
}

type Dialer struct {
	token Token
}

func NewDialer(token Token) *Dialer {
	return &Dialer{token: token}
}

func (d *Dialer) Dial() (*Session, error) {
	session, err := discordgo.New("Bot " + string(d.token))
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	err = session.Open()
	if err != nil {
		return nil, err
	}

	log.WithField("user", session.State.User.String()).Info("logged in")
	return &Session{s: session}, nil
}

type Session struct {
	s            *discordgo.Session
	interactions chan Interaction
}

func NewSession(dialer *Dialer) (*Session, func(), error) {
	s, err := dialer.Dial()
	if err != nil {
		return nil, nil, err
	}

	s.interactions = make(chan Interaction, 16)
	ch := s.interactions

	detach := s.s.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		in, ok := FromInteractionCreate(i)
		if !ok {
			log.WithField("type", i.Type).Debug("ignoring interaction")
			return
		}

		ch <- in
	})

	return s, func() {
		detach()
		_ = s.s.Close()
	}, nil
}

func (s *Session) Interactions() <-chan Interaction {
	return s.interactions
}

func (s *Session) Respond(in Interaction, rsp Response) error {
	return s.s.InteractionRespond(in.raw, rsp.interactionResponse())
}

// SendDirectMessage opens (or reuses) the DM channel with userID and posts
// the embed there.
func (s *Session) SendDirectMessage(userID string, embed Embed) error {
	ch, err := s.s.UserChannelCreate(userID)
	if err != nil {
		return err
	}

	_, err = s.s.ChannelMessageSendEmbed(ch.ID, embed.messageEmbed())
	return err
}

// RegisterCommands replaces the bot's global slash commands with defs.
func (s *Session) RegisterCommands(defs []CommandDefinition) error {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(defs))
	for _, def := range defs {
		cmds = append(cmds, def.applicationCommand())
	}

	_, err := s.s.ApplicationCommandBulkOverwrite(s.s.State.User.ID, "", cmds)
	return err
}

func (s *Session) HeartbeatLatency() time.Duration {
	return s.s.HeartbeatLatency()
}
