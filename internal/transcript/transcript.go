// Package transcript renders a ticket channel's message history into a
// self-contained HTML document that stays viewable after the channel is
// destroyed.
package transcript

import (
	"time"

	"github.com/flosch/pongo2/v6"
)

// Field is one name/value pair inside an embedded block.
type Field struct {
	Name  string
	Value string
}

// Block is an embedded rich block attached to a message. All parts are
// optional; absent parts are omitted from the output.
type Block struct {
	Title       string
	Description string
	Fields      []Field
	Footer      string
}

// Message is one entry of the chronological (oldest-first) history.
type Message struct {
	AuthorLabel string
	Automated   bool
	Timestamp   time.Time
	Body        string
	Blocks      []Block
}

// Info carries the document header values.
type Info struct {
	ChannelName   string
	CreatorLabel  string
	CategoryLabel string
	ClosedByLabel string
	Reason        string
	ClosedAt      time.Time
}

const timestampLayout = "02-01-2006 15:04:05"

// Renderer renders transcripts from a compiled template.
type Renderer struct {
	tpl *pongo2.Template
}

// NewRenderer compiles the built-in transcript template.
func NewRenderer() *Renderer {
	return &Renderer{tpl: pongo2.Must(pongo2.FromString(transcriptTemplate))}
}

type messageView struct {
	AuthorLabel string
	Class       string
	Timestamp   string
	Body        string
	Blocks      []Block
}

// Render produces the transcript document for the given header info and
// ordered message history.
func (r *Renderer) Render(info Info, messages []Message) (string, error) {
	views := make([]messageView, 0, len(messages))
	for _, msg := range messages {
		view := messageView{
			AuthorLabel: msg.AuthorLabel,
			Class:       "user-message",
			Timestamp:   msg.Timestamp.Format(timestampLayout),
			Body:        msg.Body,
			Blocks:      msg.Blocks,
		}
		if msg.Automated {
			view.Class = "bot-message"
		}
		views = append(views, view)
	}

	return r.tpl.Execute(pongo2.Context{
		"info":     info,
		"closedAt": info.ClosedAt.Format(timestampLayout),
		"messages": views,
	})
}
