package discord

import "github.com/bwmarrin/discordgo"

type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSecondary
)

// Response is the single reply to an Interaction. When Modal is set the
// rest of the fields are ignored and the modal is opened instead.
type Response struct {
	Content   string
	Ephemeral bool
	Menu      *SelectMenu
	Buttons   [][]Button
	Modal     *Modal
}

type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []MenuOption
}

type MenuOption struct {
	Label string
	Value string
}

type Button struct {
	CustomID string
	Label    string
	Style    ButtonStyle
}

type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

type TextInput struct {
	CustomID    string
	Label       string
	Placeholder string
	Paragraph   bool
	Required    bool
}

type Embed struct {
	Title       string
	Description string
	Footer      string
	Color       int
}

func (r Response) interactionResponse() *discordgo.InteractionResponse {
	if r.Modal != nil {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID:   r.Modal.CustomID,
				Title:      r.Modal.Title,
				Components: r.Modal.components(),
			},
		}
	}

	data := &discordgo.InteractionResponseData{
		Content: r.Content,
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	if r.Menu != nil {
		data.Components = append(data.Components, r.Menu.component())
	}
	for _, row := range r.Buttons {
		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, b.component())
		}
		data.Components = append(data.Components, discordgo.ActionsRow{Components: buttons})
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

func (m SelectMenu) component() discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(m.Options))
	for _, o := range m.Options {
		options = append(options, discordgo.SelectMenuOption{Label: o.Label, Value: o.Value})
	}

	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    m.CustomID,
				Placeholder: m.Placeholder,
				Options:     options,
			},
		},
	}
}

func (b Button) component() discordgo.MessageComponent {
	style := discordgo.PrimaryButton
	if b.Style == ButtonSecondary {
		style = discordgo.SecondaryButton
	}

	return discordgo.Button{
		CustomID: b.CustomID,
		Label:    b.Label,
		Style:    style,
	}
}

func (m Modal) components() []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(m.Inputs))
	for _, in := range m.Inputs {
		style := discordgo.TextInputShort
		if in.Paragraph {
			style = discordgo.TextInputParagraph
		}

		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    in.CustomID,
					Label:       in.Label,
					Style:       style,
					Placeholder: in.Placeholder,
					Required:    in.Required,
				},
			},
		})
	}
	return rows
}

func (e Embed) messageEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return embed
}
