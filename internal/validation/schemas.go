package validation

import (
	"encoding/json"
	"strings"
	"time"
)

// NewUserInput is the registration payload.
type NewUserInput struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=20"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=20"`
}

// PostInput is the payload for a post or a comment. User is filled in from
// the authenticated token, never from the request body.
type PostInput struct {
	User   string `json:"-"                validate:"required,objectid"`
	Text   string `json:"text"             validate:"required,min=1"`
	Avatar string `json:"avatar,omitempty"`
	Name   string `json:"name,omitempty"`
}

// SocialInput carries the optional social links of a profile.
type SocialInput struct {
	YouTube   string `json:"youtube,omitempty"   validate:"omitempty,social=youtube"`
	Twitter   string `json:"twitter,omitempty"   validate:"omitempty,social=twitter"`
	Facebook  string `json:"facebook,omitempty"  validate:"omitempty,social=facebook"`
	LinkedIn  string `json:"linkedin,omitempty"  validate:"omitempty,social=linkedin"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,social=instagram"`
}

// ExperienceInput is a job entry. To, when present, must be later than From
// and not in the future.
type ExperienceInput struct {
	Title       string `json:"title"                 validate:"required"`
	Company     string `json:"company"               validate:"required"`
	Location    string `json:"location,omitempty"`
	From        *Date  `json:"from"                  validate:"required"`
	To          *Date  `json:"to,omitempty"`
	Current     *bool  `json:"current"               validate:"required"`
	Description string `json:"description,omitempty"`
}

// EducationInput is a school entry with the same date rule as ExperienceInput.
type EducationInput struct {
	School       string `json:"school"                 validate:"required"`
	Degree       string `json:"degree"                 validate:"required"`
	FieldOfStudy string `json:"fieldofstudy,omitempty"`
	From         *Date  `json:"from"                   validate:"required"`
	To           *Date  `json:"to,omitempty"`
	Current      *bool  `json:"current"                validate:"required"`
	Description  string `json:"description,omitempty"`
}

// ProfileInput is the payload for creating or replacing a profile. User is
// filled in from the authenticated token.
type ProfileInput struct {
	User           string            `json:"-"                        validate:"required,objectid"`
	Handle         string            `json:"handle"                   validate:"required,max=40,handle"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"        validate:"omitempty,url"`
	Location       string            `json:"location,omitempty"`
	Status         string            `json:"status"                   validate:"required"`
	Skills         []string          `json:"skills"                   validate:"required,min=1,max=50,dive,required,notblank"`
	Bio            string            `json:"bio,omitempty"`
	GithubUsername string            `json:"githubusername,omitempty"`
	Social         *SocialInput      `json:"social,omitempty"`
	Experience     []ExperienceInput `json:"experience,omitempty"     validate:"max=10,dive"`
	Education      []EducationInput  `json:"education,omitempty"      validate:"max=5,dive"`
}

// Date is a calendar date or timestamp in a request body. It accepts both
// "2006-01-02" and RFC 3339.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate wraps t.
func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t.UTC()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Value returns the wrapped time, or nil for a nil Date.
func (d *Date) Value() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
