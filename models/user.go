// models/user.go
package models

// Default author display data used when a user record is missing or blank.
const (
	DefaultAuthorName     = "Unknown"
	DefaultAuthorImageURL = "https://via.placeholder.com/40"
)

// User is a platform user, owned by the user-management system.
type User struct {
	ID          string           `firestore:"-" json:"id"`
	DisplayName string           `firestore:"displayName" json:"displayName"`
	PhotoURL    string           `firestore:"photoURL" json:"photoURL"`
	Teams       []TeamMembership `firestore:"teams" json:"teams"`
}

// TeamMembership links a user to one team.
type TeamMembership struct {
	TeamUID string `firestore:"teamUid" json:"teamUid"`
}

// TeamIDs returns the user's distinct, non-empty team identifiers.
func (u *User) TeamIDs() []string {
	seen := make(map[string]bool, len(u.Teams))
	var ids []string
	for _, t := range u.Teams {
		if t.TeamUID == "" || seen[t.TeamUID] {
			continue
		}
		seen[t.TeamUID] = true
		ids = append(ids, t.TeamUID)
	}
	return ids
}

// Author is the display data shown next to a post or notification.
type Author struct {
	Name     string
	ImageURL string
}

// AuthorOf resolves display data, falling back to the defaults for a nil
// user or blank fields.
func AuthorOf(u *User) Author {
	a := Author{Name: DefaultAuthorName, ImageURL: DefaultAuthorImageURL}
	if u == nil {
		return a
	}
	if u.DisplayName != "" {
		a.Name = u.DisplayName
	}
	if u.PhotoURL != "" {
		a.ImageURL = u.PhotoURL
	}
	return a
}
