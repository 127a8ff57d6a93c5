package bot

import "github.com/alkmaar-rp/supportbot/internal/platform"

// InteractionKind distinguishes the gateway payloads the router handles.
type InteractionKind string

const (
	KindCommand InteractionKind = "command"
	KindButton  InteractionKind = "button"
	KindSelect  InteractionKind = "select"
	KindModal   InteractionKind = "modal"
)

// Interaction is the normalized form of one incoming gateway interaction.
// Name holds the command name for commands and the component custom ID for
// everything else.
type Interaction struct {
	Kind      InteractionKind
	Name      string
	ActorID   string
	ActorTag  string
	ChannelID string
	Options   map[string]string
	Values    []string
	Fields    map[string]string
}

// Option returns a command option, empty string when absent.
func (i Interaction) Option(name string) string {
	return i.Options[name]
}

// Field returns a modal field value, empty string when absent.
func (i Interaction) Field(name string) string {
	return i.Fields[name]
}

// ModalField describes one input of a modal prompt.
type ModalField struct {
	ID          string
	Label       string
	Placeholder string
	Paragraph   bool
	Required    bool
}

// Modal is a form prompt shown in response to an interaction.
type Modal struct {
	ID     string
	Title  string
	Fields []ModalField
}

// Responder sends the reply for one interaction. Ephemeral replies are
// visible to the actor only.
type Responder interface {
	Reply(out platform.Outgoing) error
	ReplyEphemeral(out platform.Outgoing) error
	ShowModal(modal Modal) error
}
