package bot

import "github.com/bwmarrin/discordgo"

// ComponentHandler serves message components, modals and autocomplete.
// Components are dispatched by CustomID prefix so one handler can own a
// family of buttons.
type ComponentHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

const (
	selectVideoPrefix = "select_video_"
	panelPrefix       = "panel_"
	panelModalID      = "panel_play_modal"
)
