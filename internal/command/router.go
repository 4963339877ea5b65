package command

import "github.com/connorkuehl/pointsbot/internal/discord"

type ArgParser interface {
	ParseArg(in discord.Interaction) error
}

type ArgConstructor func() ArgParser

type route struct {
	kind discord.Kind
	name string
}

type Router struct {
	handlers map[route]ArgConstructor
}

func NewRouter() *Router {
	r := Router{
		handlers: map[route]ArgConstructor{
			{discord.KindCommand, CommandPanel}:      func() ArgParser { return new(OpenPanelArgs) },
			{discord.KindCommand, CommandSetRole}:    func() ArgParser { return new(SetRoleArgs) },
			{discord.KindCommand, CommandSetupReply}: func() ArgParser { return new(SetupReplyArgs) },

			{discord.KindComponent, MenuAdmin}:            func() ArgParser { return new(SelectActionArgs) },
			{discord.KindComponent, ButtonShowReply}:      func() ArgParser { return new(ShowReplyArgs) },
			{discord.KindComponent, ButtonConfigureReply}: func() ArgParser { return new(EditReplyArgs) },

			{discord.KindModalSubmit, ModalGivePoints}: func() ArgParser { return new(GrantPointsArgs) },
			{discord.KindModalSubmit, ModalViewPoints}: func() ArgParser { return new(CheckPointsArgs) },
			{discord.KindModalSubmit, ModalSetReply}:   func() ArgParser { return new(ConfigureReplyArgs) },
		},
	}

	return &r
}

// Route returns fresh, unparsed args for the interaction, or nil if nothing
// handles it.
func (r *Router) Route(in discord.Interaction) ArgParser {
	ctor, ok := r.handlers[route{in.Kind, in.Name}]
	if !ok {
		return nil
	}
	return ctor()
}
