package transcript

import "github.com/klemjul/msgdump/internal/graph"

// RoleFor labels a sender: the other party speaks as the assistant, everyone else as the user.
func RoleFor(senderID, otherPartyID string) MessageRole {
	if senderID == otherPartyID {
		return Assistant
	}
	return User
}

// FromRecords relabels records in fetch order, then reverses them. The Graph API
// returns newest first, so the result is oldest first.
func FromRecords(records []graph.Record, otherPartyID string) Transcript {
	messages := make([]Message, 0, len(records))
	for _, rec := range records {
		messages = append(messages, Message{
			Role:    RoleFor(rec.SenderID, otherPartyID),
			Content: rec.Text,
		})
	}
	Reverse(messages)
	return Transcript{Messages: messages}
}

func Reverse(messages []Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
