package models

// ChatSummary is one userChats document: counterpart key to conversation entry.
type ChatSummary struct {
	ID      string
	Entries map[string]ChatEntry
}

// ChatEntry summarises one conversation.
type ChatEntry struct {
	UID         string       `firestore:"uid"`
	LastMessage *LastMessage `firestore:"lastMessage"`
}

// LastMessage describes the most recent message of a conversation.
// IsRead is nil when the flag was never written.
type LastMessage struct {
	SenderID string `firestore:"senderId"`
	IsRead   *bool  `firestore:"isRead"`
	Text     string `firestore:"text"`
}

// UnreadFor reports whether the entry is an unread message addressed to userID.
func (e ChatEntry) UnreadFor(userID string) bool {
	if e.UID != userID || e.LastMessage == nil {
		return false
	}
	m := e.LastMessage
	return m.IsRead != nil && !*m.IsRead && m.SenderID != userID
}
