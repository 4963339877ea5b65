package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/connorkuehl/pointsbot/internal/command"
	"github.com/connorkuehl/pointsbot/internal/discord"
	"github.com/connorkuehl/pointsbot/internal/points"

	log "github.com/sirupsen/logrus"
)

const (
	msgPanel           = "🎛️ **Admin panel:**"
	msgRoleSet         = "✅ Authorized role set: <@&%s>"
	msgReplyButtons    = `✅ Reply button created. Press "Edit reply" to set the text/link.`
	msgNotAuthorized   = "❌ You are not allowed to grant points."
	msgInvalidInput    = "❌ Invalid input."
	msgGranted         = "✅ Granted %s points to user %s."
	msgBalance         = "📊 Points for user %s: **%s**"
	msgReplySaved      = "✅ Reply configuration saved."
	msgUnexpectedError = "❌ An unexpected error occurred."

	colorGranted = 0x2ecc71
)

var errAlreadyResponded = errors.New("interaction already answered")

// responder makes sure an interaction is answered at most once.
type responder struct {
	session Session
	in      discord.Interaction
	sent    bool
}

func (r *responder) Respond(rsp discord.Response) error {
	if r.sent {
		return errAlreadyResponded
	}

	if err := r.session.Respond(r.in, rsp); err != nil {
		return err
	}
	r.sent = true
	return nil
}

func (r *responder) Ephemeral(content string) error {
	return r.Respond(discord.Response{Content: content, Ephemeral: true})
}

func (b *Bot) handle(ctx context.Context, in discord.Interaction) {
	ll := log.WithFields(log.Fields{
		"guild_id":    in.GuildID,
		"user_id":     in.UserID,
		"interaction": in.Kind.String() + ":" + in.Name,
	})

	rsp := &responder{session: b.discord, in: in}
	defer func() {
		if r := recover(); r != nil {
			b.fail(ll, rsp, fmt.Errorf("panic: %v", r))
		}
	}()

	var err error
	switch args := b.router.Route(in).(type) {
	case *command.OpenPanelArgs:
		err = b.handleOpenPanel(rsp)

	case *command.SetRoleArgs:
		err = b.handleSetRole(ctx, ll.WithField("handler", "set_role"), args, in, rsp)

	case *command.SetupReplyArgs:
		err = b.handleSetupReply(ctx, rsp)

	case *command.SelectActionArgs:
		err = b.handleSelectAction(args, in, rsp)

	case *command.GrantPointsArgs:
		err = b.handleGrantPoints(ctx, ll.WithField("handler", "grant_points"), args, in, rsp)

	case *command.CheckPointsArgs:
		err = b.handleCheckPoints(ctx, args, in, rsp)

	case *command.ConfigureReplyArgs:
		err = b.handleConfigureReply(ctx, args, in, rsp)

	case *command.ShowReplyArgs:
		err = b.handleShowReply(ctx, rsp)

	case *command.EditReplyArgs:
		err = b.handleEditReply(rsp)

	default:
		ll.Warn("no handler for interaction")
		return
	}

	if err != nil {
		b.fail(ll, rsp, err)
	}
}

// fail logs err and, if the interaction has not been answered yet, answers
// it with a generic error.
func (b *Bot) fail(ll *log.Entry, rsp *responder, err error) {
	ll.WithError(err).Error("handle interaction")

	if rsp.sent {
		return
	}
	if err := rsp.Ephemeral(msgUnexpectedError); err != nil {
		ll.WithError(err).Error("send failure response")
	}
}

func (b *Bot) handleOpenPanel(rsp *responder) error {
	return rsp.Respond(discord.Response{
		Content:   msgPanel,
		Ephemeral: true,
		Menu: &discord.SelectMenu{
			CustomID:    command.MenuAdmin,
			Placeholder: "Choose an action",
			Options: []discord.MenuOption{
				{Label: "Grant points", Value: command.ActionGivePoints},
				{Label: "View a user's points", Value: command.ActionViewPoints},
			},
		},
	})
}

func (b *Bot) handleSetRole(ctx context.Context, ll *log.Entry, args *command.SetRoleArgs, in discord.Interaction, rsp *responder) error {
	if err := args.ParseArg(in); err != nil {
		return rsp.Ephemeral(msgInvalidInput)
	}

	err := b.db.Update(ctx, func(doc *points.Document) error {
		doc.SetAuthorizedRole(args.RoleID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set authorized role: %w", err)
	}

	ll.WithField("role_id", args.RoleID).Info("authorized role changed")
	return rsp.Ephemeral(fmt.Sprintf(msgRoleSet, args.RoleID))
}

func (b *Bot) handleSetupReply(ctx context.Context, rsp *responder) error {
	err := b.db.Update(ctx, func(doc *points.Document) error {
		doc.Reply = &points.ReplyConfig{}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset reply: %w", err)
	}

	return rsp.Respond(discord.Response{
		Content: msgReplyButtons,
		Buttons: [][]discord.Button{
			{{CustomID: command.ButtonConfigureReply, Label: "Edit reply", Style: discord.ButtonSecondary}},
			{{CustomID: command.ButtonShowReply, Label: "Show reply", Style: discord.ButtonPrimary}},
		},
	})
}

func (b *Bot) handleSelectAction(args *command.SelectActionArgs, in discord.Interaction, rsp *responder) error {
	if err := args.ParseArg(in); err != nil {
		return rsp.Ephemeral(msgInvalidInput)
	}

	targetInput := discord.TextInput{
		CustomID:    command.FieldTargetUserID,
		Label:       "User ID",
		Placeholder: "123456789012345678",
		Required:    true,
	}

	switch args.Action {
	case command.ActionGivePoints:
		return rsp.Respond(discord.Response{Modal: &discord.Modal{
			CustomID: command.ModalGivePoints,
			Title:    "Grant points",
			Inputs: []discord.TextInput{
				targetInput,
				{
					CustomID:    command.FieldPointsAmount,
					Label:       "Amount",
					Placeholder: "100",
					Required:    true,
				},
			},
		}})
	default:
		return rsp.Respond(discord.Response{Modal: &discord.Modal{
			CustomID: command.ModalViewPoints,
			Title:    "View a user's points",
			Inputs:   []discord.TextInput{targetInput},
		}})
	}
}

func (b *Bot) handleGrantPoints(ctx context.Context, ll *log.Entry, args *command.GrantPointsArgs, in discord.Interaction, rsp *responder) error {
	parseErr := args.ParseArg(in)

	var balance float64
	err := b.db.Update(ctx, func(doc *points.Document) error {
		if !points.IsAuthorized(in.RoleIDs, *doc) {
			return points.ErrUnauthorized
		}
		if parseErr != nil {
			return parseErr
		}

		balance = doc.Credit(args.Target, args.Amount)
		return nil
	})
	switch {
	case errors.Is(err, points.ErrUnauthorized):
		ll.Info("refused grant from unauthorized member")
		return rsp.Ephemeral(msgNotAuthorized)
	case errors.Is(err, command.ErrInvalidArgument), errors.Is(err, command.ErrMissingArgument):
		ll.WithError(err).Info("refused grant with invalid input")
		return rsp.Ephemeral(msgInvalidInput)
	case err != nil:
		return fmt.Errorf("grant points: %w", err)
	}

	ll.WithFields(log.Fields{
		"target":  args.Target,
		"amount":  args.Amount,
		"balance": balance,
	}).Info("granted points")

	amount := points.FormatPoints(args.Amount)
	if err := rsp.Ephemeral(fmt.Sprintf(msgGranted, amount, args.Target)); err != nil {
		return err
	}

	b.notifyGranted(ll, args.Target, in.UserTag, amount)
	return nil
}

// notifyGranted DMs the recipient about a grant. Failures are only logged.
func (b *Bot) notifyGranted(ll *log.Entry, userID, grantedBy, amount string) {
	embed := discord.Embed{
		Title:       "🎉 Points granted",
		Description: fmt.Sprintf("You have been granted **%s** points", amount),
		Footer:      "Granted by: " + grantedBy,
		Color:       colorGranted,
	}

	b.notifications.Add(1)
	go func() {
		defer b.notifications.Done()

		if err := b.discord.SendDirectMessage(userID, embed); err != nil {
			ll.WithError(err).WithField("target", userID).Warn("could not DM user")
		}
	}()
}

func (b *Bot) handleCheckPoints(ctx context.Context, args *command.CheckPointsArgs, in discord.Interaction, rsp *responder) error {
	if err := args.ParseArg(in); err != nil {
		return rsp.Ephemeral(msgInvalidInput)
	}

	doc := b.db.Load(ctx)
	balance := points.FormatPoints(doc.Balance(args.Target))
	return rsp.Ephemeral(fmt.Sprintf(msgBalance, args.Target, balance))
}

func (b *Bot) handleConfigureReply(ctx context.Context, args *command.ConfigureReplyArgs, in discord.Interaction, rsp *responder) error {
	if err := args.ParseArg(in); err != nil {
		return rsp.Ephemeral(msgInvalidInput)
	}

	err := b.db.Update(ctx, func(doc *points.Document) error {
		reply := args.Reply
		doc.Reply = &reply
		return nil
	})
	if err != nil {
		return fmt.Errorf("save reply: %w", err)
	}

	return rsp.Ephemeral(msgReplySaved)
}

func (b *Bot) handleShowReply(ctx context.Context, rsp *responder) error {
	doc := b.db.Load(ctx)
	return rsp.Ephemeral(doc.ShowReply())
}

func (b *Bot) handleEditReply(rsp *responder) error {
	return rsp.Respond(discord.Response{Modal: &discord.Modal{
		CustomID: command.ModalSetReply,
		Title:    "Set reply",
		Inputs: []discord.TextInput{
			{
				CustomID:    command.FieldReplyText,
				Label:       "Reply text",
				Placeholder: "Write the text here...",
				Paragraph:   true,
			},
			{
				CustomID:    command.FieldReplyMedia,
				Label:       "Image link / extra text (optional)",
				Placeholder: "https://example.com/image.jpg",
			},
		},
	}})
}
