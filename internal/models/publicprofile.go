package models

// PublicProfile is the read-optimized projection of a User that is safe to
// serve anonymously. It is keyed by the same UID as its source record and
// mirrored into the Firestore "publicProfiles" collection.
type PublicProfile struct {
	UID              string   `json:"uid"`
	Name             string   `json:"name"`
	Email            string   `json:"email,omitempty"`
	PhotoURL         string   `json:"photoURL,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Website          string   `json:"website,omitempty"`
	Location         string   `json:"location,omitempty"`
	Username         string   `json:"username,omitempty"`
	ArtisticName     string   `json:"artisticName,omitempty"`
	ProfileCompleted bool     `json:"profileCompleted"`
}

// PublicProfileFields is the allow-list governing what leaves the private
// record. It is an explicit enumeration on purpose: a field added to User
// stays private until it is also added here and to ProjectPublicProfile.
var PublicProfileFields = []string{
	"uid",
	"name",
	"email",
	"photoURL",
	"bio",
	"tags",
	"website",
	"location",
	"username",
	"artisticName",
	"profileCompleted",
}

// ProjectPublicProfile maps a private User onto its public projection. Pure
// and total: it never fails and touches nothing but its argument.
func ProjectPublicProfile(u *User) *PublicProfile {
	return &PublicProfile{
		UID:              u.UID,
		Name:             u.Name,
		Email:            u.Email,
		PhotoURL:         u.PhotoURL,
		Bio:              u.Bio,
		Tags:             u.Tags,
		Website:          u.Website,
		Location:         u.Location,
		Username:         u.Username,
		ArtisticName:     u.ArtisticName,
		ProfileCompleted: u.ProfileCompleted,
	}
}

// Fields returns the full intended document state as a map, one entry per
// allow-listed field. Empty values are included deliberately: the sync upsert
// is a blind overwrite of the whole projection, so a field cleared on the
// source must also clear on the copy.
func (p *PublicProfile) Fields() map[string]interface{} {
	return map[string]interface{}{
		"uid":              p.UID,
		"name":             p.Name,
		"email":            p.Email,
		"photoURL":         p.PhotoURL,
		"bio":              p.Bio,
		"tags":             p.Tags,
		"website":          p.Website,
		"location":         p.Location,
		"username":         p.Username,
		"artisticName":     p.ArtisticName,
		"profileCompleted": p.ProfileCompleted,
	}
}
