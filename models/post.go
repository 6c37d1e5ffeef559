package models

import "time"

// TeamTag grants visibility of a post or notification to one team.
type TeamTag struct {
	Label string `firestore:"label" json:"label,omitempty"`
	Value string `firestore:"value" json:"value,omitempty"`
}

// Post is a blog post as stored in the blogs collection.
type Post struct {
	ID                    string           `firestore:"-"`
	MessageTitle          string           `firestore:"messageTitle"`
	MessageContent        string           `firestore:"messageContent"`
	CreatedAt             time.Time        `firestore:"createdAt"`
	IsDeleted             bool             `firestore:"isDeleted"`
	UserID                string           `firestore:"userId"`
	OrgID                 string           `firestore:"orgId"`
	NotificationID        string           `firestore:"notificationId"`
	Teams                 []TeamTag        `firestore:"teams"`
	Likes                 []string         `firestore:"likes"`
	Viewed                []string         `firestore:"viewed"`
	Comments              []map[string]any `firestore:"comments"`
	IsPinned              bool             `firestore:"isPinned"`
	IsDisablePostComments bool             `firestore:"isDisablePostComments"`
	PollData              map[string]any   `firestore:"pollData"`
}

// PostView is the feed representation of a post.
type PostView struct {
	ID                    string           `json:"id"`
	MessageTitle          string           `json:"messageTitle"`
	MessageContent        string           `json:"messageContent"`
	CreatedAt             int64            `json:"createdAt"`
	IsDeleted             bool             `json:"isDeleted"`
	UserID                string           `json:"userId"`
	OrgID                 string           `json:"orgId"`
	NotificationID        string           `json:"notificationId,omitempty"`
	Teams                 []TeamTag        `json:"teams"`
	Likes                 []string         `json:"likes"`
	Viewed                []string         `json:"viewed"`
	Comments              []map[string]any `json:"comments"`
	IsPinned              bool             `json:"isPinned"`
	IsDisablePostComments bool             `json:"isDisablePostComments"`
	PollData              map[string]any   `json:"pollData,omitempty"`
	AuthorName            string           `json:"authorName"`
	AuthorImageURL        string           `json:"authorImageUrl"`
}

// NewPostView renders p with its author's display data.
func NewPostView(p Post, author Author) PostView {
	return PostView{
		ID:                    p.ID,
		MessageTitle:          p.MessageTitle,
		MessageContent:        p.MessageContent,
		CreatedAt:             p.CreatedAt.UnixMilli(),
		IsDeleted:             p.IsDeleted,
		UserID:                p.UserID,
		OrgID:                 p.OrgID,
		NotificationID:        p.NotificationID,
		Teams:                 nonNil(p.Teams),
		Likes:                 nonNil(p.Likes),
		Viewed:                nonNil(p.Viewed),
		Comments:              nonNil(p.Comments),
		IsPinned:              p.IsPinned,
		IsDisablePostComments: p.IsDisablePostComments,
		PollData:              p.PollData,
		AuthorName:            author.Name,
		AuthorImageURL:        author.ImageURL,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
