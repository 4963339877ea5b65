package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/connorkuehl/pointsbot/internal/discord"
	"github.com/connorkuehl/pointsbot/internal/points"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMissingArgument = errors.New("missing argument")
)

type OpenPanelArgs struct{}

func (a *OpenPanelArgs) ParseArg(discord.Interaction) error { return nil }

type SetRoleArgs struct {
	RoleID string
}

func (a *SetRoleArgs) ParseArg(in discord.Interaction) error {
	roleID := strings.TrimSpace(in.Options[OptionRole])
	if roleID == "" {
		return fmt.Errorf("%w: %s", ErrMissingArgument, OptionRole)
	}

	a.RoleID = roleID
	return nil
}

type SetupReplyArgs struct{}

func (a *SetupReplyArgs) ParseArg(discord.Interaction) error { return nil }

type SelectActionArgs struct {
	Action string
}

func (a *SelectActionArgs) ParseArg(in discord.Interaction) error {
	if len(in.Values) == 0 {
		return ErrMissingArgument
	}

	switch v := in.Values[0]; v {
	case ActionGivePoints, ActionViewPoints:
		a.Action = v
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, v)
	}
}

type GrantPointsArgs struct {
	Target string
	Amount float64
}

func (a *GrantPointsArgs) ParseArg(in discord.Interaction) error {
	target, err := points.ParseUserID(in.Fields[FieldTargetUserID])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	amount, err := points.ParseAmount(in.Fields[FieldPointsAmount])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	a.Target = target
	a.Amount = amount
	return nil
}

type CheckPointsArgs struct {
	Target string
}

func (a *CheckPointsArgs) ParseArg(in discord.Interaction) error {
	target, err := points.ParseUserID(in.Fields[FieldTargetUserID])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	a.Target = target
	return nil
}

type ConfigureReplyArgs struct {
	Reply points.ReplyConfig
}

func (a *ConfigureReplyArgs) ParseArg(in discord.Interaction) error {
	a.Reply = points.NewReplyConfig(in.Fields[FieldReplyText], in.Fields[FieldReplyMedia])
	return nil
}

type ShowReplyArgs struct{}

func (a *ShowReplyArgs) ParseArg(discord.Interaction) error { return nil }

type EditReplyArgs struct{}

func (a *EditReplyArgs) ParseArg(discord.Interaction) error { return nil }
