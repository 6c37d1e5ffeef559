package models

import "time"

// Recipient is one user's read state embedded in a notification.
// Extra carries keys this service does not interpret so a rewrite keeps them.
type Recipient struct {
	ID          string         `firestore:"id" json:"id"`
	Read        bool           `firestore:"read" json:"read"`
	Deleted     bool           `firestore:"deleted" json:"deleted,omitempty"`
	DisplayName string         `firestore:"displayName" json:"displayName,omitempty"`
	PhotoURL    string         `firestore:"photoURL" json:"photoURL,omitempty"`
	Extra       map[string]any `firestore:",remain" json:"-"`
}

// Fields is the stored shape of the entry.
func (r Recipient) Fields() map[string]any {
	m := make(map[string]any, len(r.Extra)+5)
	for k, v := range r.Extra {
		m[k] = v
	}
	m["id"] = r.ID
	m["read"] = r.Read
	if r.Deleted {
		m["deleted"] = true
	}
	if r.DisplayName != "" {
		m["displayName"] = r.DisplayName
	}
	if r.PhotoURL != "" {
		m["photoURL"] = r.PhotoURL
	}
	return m
}

// Notification as stored in the notification collection.
type Notification struct {
	ID        string      `firestore:"-"`
	Title     string      `firestore:"title"`
	Message   string      `firestore:"message"`
	CreatedAt time.Time   `firestore:"createdAt"`
	UserID    string      `firestore:"userId"`
	Teams     []TeamTag   `firestore:"teams"`
	Users     []Recipient `firestore:"users"`

	// RawUsers is the users array as read from the store. Entries that were
	// not changed are written back from it verbatim.
	RawUsers []any `firestore:"-"`
	changed  map[int]bool
}

// Entry returns userID's non-deleted recipient entry.
func (n *Notification) Entry(userID string) (*Recipient, bool) {
	for i := range n.Users {
		if n.Users[i].ID == userID && !n.Users[i].Deleted {
			return &n.Users[i], true
		}
	}
	return nil, false
}

// MarkRead flags userID's entry as read and reports whether anything changed.
// Entries of other users are left untouched.
func (n *Notification) MarkRead(userID string) bool {
	changed := false
	for i := range n.Users {
		if n.Users[i].ID == userID && !n.Users[i].Read {
			n.Users[i].Read = true
			if n.changed == nil {
				n.changed = make(map[int]bool)
			}
			n.changed[i] = true
			changed = true
		}
	}
	return changed
}

// RecipientFields is the stored shape of the users array. Entries untouched
// by MarkRead keep their stored form; changed ones only gain read=true.
func (n *Notification) RecipientFields() []any {
	raw := n.RawUsers
	if len(raw) != len(n.Users) {
		raw = nil
	}
	out := make([]any, len(n.Users))
	for i, r := range n.Users {
		if raw == nil {
			out[i] = r.Fields()
			continue
		}
		if !n.changed[i] {
			out[i] = raw[i]
			continue
		}
		stored, ok := raw[i].(map[string]any)
		if !ok {
			out[i] = r.Fields()
			continue
		}
		entry := make(map[string]any, len(stored)+1)
		for k, v := range stored {
			entry[k] = v
		}
		entry["read"] = true
		out[i] = entry
	}
	return out
}

// NotificationView is the API representation of a notification.
type NotificationView struct {
	ID             string      `json:"id"`
	Title          string      `json:"title,omitempty"`
	Message        string      `json:"message"`
	CreatedAt      int64       `json:"createdAt"`
	UserID         string      `json:"userId"`
	Teams          []TeamTag   `json:"teams,omitempty"`
	Users          []Recipient `json:"users"`
	AuthorName     string      `json:"authorName"`
	AuthorImageURL string      `json:"authorImageUrl"`
}

// NewNotificationView renders n with its creator's display data.
func NewNotificationView(n Notification, author Author) NotificationView {
	return NotificationView{
		ID:             n.ID,
		Title:          n.Title,
		Message:        n.Message,
		CreatedAt:      n.CreatedAt.UnixMilli(),
		UserID:         n.UserID,
		Teams:          n.Teams,
		Users:          nonNil(n.Users),
		AuthorName:     author.Name,
		AuthorImageURL: author.ImageURL,
	}
}

// NotificationList is the notifications endpoint payload.
type NotificationList struct {
	Count         int                `json:"count"`
	Notifications []NotificationView `json:"notifications"`
}

// UnreadCounts is the unread counts endpoint payload.
type UnreadCounts struct {
	UnreadNotifications int `json:"unreadNotifications"`
	UnreadMessages      int `json:"unreadMessages"`
}
