package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type Kind int

const (
	KindCommand Kind = iota + 1
	KindComponent
	KindModalSubmit
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindComponent:
		return "component"
	case KindModalSubmit:
		return "modal_submit"
	default:
		return "unknown"
	}
}

// Interaction is one user action delivered by Discord: a slash command, a
// button press or menu selection, or a submitted modal.
type Interaction struct {
	ID      string
	Kind    Kind
	GuildID string
	UserID  string
	UserTag string
	RoleIDs []string

	// Name is the command name for commands and the custom id for
	// components and modals.
	Name string

	Options map[string]string
	Values  []string
	Fields  map[string]string

	raw *discordgo.Interaction
}

// FromInteractionCreate converts a gateway event. Interaction types the bot
// does not handle (pings, autocomplete) are reported as not ok.
func FromInteractionCreate(i *discordgo.InteractionCreate) (Interaction, bool) {
	in := Interaction{
		ID:      i.ID,
		GuildID: i.GuildID,
		raw:     i.Interaction,
	}

	user := i.User
	if i.Member != nil {
		user = i.Member.User
		in.RoleIDs = i.Member.Roles
	}
	if user != nil {
		in.UserID = user.ID
		in.UserTag = user.String()
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		in.Kind = KindCommand
		in.Name = data.Name
		in.Options = make(map[string]string, len(data.Options))
		for _, opt := range data.Options {
			in.Options[opt.Name] = fmt.Sprint(opt.Value)
		}

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		in.Kind = KindComponent
		in.Name = data.CustomID
		in.Values = data.Values

	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		in.Kind = KindModalSubmit
		in.Name = data.CustomID
		in.Fields = textInputs(data.Components)

	default:
		return Interaction{}, false
	}

	return in, true
}

func textInputs(components []discordgo.MessageComponent) map[string]string {
	fields := make(map[string]string)
	for _, c := range components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}

		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				fields[input.CustomID] = input.Value
			}
		}
	}
	return fields
}
