package command

// Slash command names.
const (
	CommandPanel      = "panel"
	CommandSetRole    = "set-role"
	CommandSetupReply = "setup-reply"

	OptionRole = "role"
)

// Custom ids carried by components and modals. Discord echoes them back, so
// they are the only state kept between the steps of a flow.
const (
	MenuAdmin        = "admin_menu"
	ActionGivePoints = "give_points"
	ActionViewPoints = "view_points"

	ModalGivePoints = "give_points_modal"
	ModalViewPoints = "view_points_modal"
	ModalSetReply   = "set_reply_modal"

	FieldTargetUserID = "target_user_id"
	FieldPointsAmount = "points_amount"
	FieldReplyText    = "reply_text"
	FieldReplyMedia   = "reply_media"

	ButtonShowReply      = "show_reply"
	ButtonConfigureReply = "configure_reply"
)
