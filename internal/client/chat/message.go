package chat

import "fmt"

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Citation points at a page of a source document.
type Citation struct {
	DocumentID string
	Page       int
}

// Message is one entry of the chat transcript.
type Message struct {
	Role      Role
	Text      string
	Citations []Citation
}

// WelcomeMessages is shown once, one message per welcome interval, the first
// time a chat is opened.
var WelcomeMessages = []string{
	"Hi! I can answer questions about this donor's record.",
	"Try: \"Summarize the medical history.\"",
	"Try: \"Are there any critical findings?\"",
	"Try: \"Which documents mention medications?\"",
}

// PlaceholderCitation is cited when the donor's documents are not known.
var PlaceholderCitation = Citation{DocumentID: "donor-record", Page: 1}

// ScriptedReply is the placeholder assistant answer to text. It cites page 1
// of documentID, or PlaceholderCitation when documentID is empty.
func ScriptedReply(text, documentID string) Message {
	cite := PlaceholderCitation
	if documentID != "" {
		cite = Citation{DocumentID: documentID, Page: 1}
	}
	return Message{
		Role:      RoleAssistant,
		Text:      fmt.Sprintf("Here is what the record says about %q. See the cited source for details.", text),
		Citations: []Citation{cite},
	}
}
