package domain

import "time"

// Limits on the embedded profile lists.
const (
	MaxHandleLength = 40
	MaxSkills       = 50
	MaxExperience   = 10
	MaxEducation    = 5
)

// Social holds the optional links to a user's presence on other platforms.
type Social struct {
	YouTube   string `json:"youtube,omitempty"   bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"   bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"  bson:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"  bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// Experience is a job entry embedded in a Profile.
type Experience struct {
	ID          ID         `json:"id"                    bson:"_id"`
	Title       string     `json:"title"                 bson:"title"`
	Company     string     `json:"company"               bson:"company"`
	Location    string     `json:"location,omitempty"    bson:"location,omitempty"`
	From        time.Time  `json:"from"                  bson:"from"`
	To          *time.Time `json:"to,omitempty"          bson:"to,omitempty"`
	Current     bool       `json:"current"               bson:"current"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
}

// Education is a school entry embedded in a Profile.
type Education struct {
	ID           ID         `json:"id"                     bson:"_id"`
	School       string     `json:"school"                 bson:"school"`
	Degree       string     `json:"degree"                 bson:"degree"`
	FieldOfStudy string     `json:"fieldofstudy,omitempty" bson:"fieldofstudy,omitempty"`
	From         time.Time  `json:"from"                   bson:"from"`
	To           *time.Time `json:"to,omitempty"           bson:"to,omitempty"`
	Current      bool       `json:"current"                bson:"current"`
	Description  string     `json:"description,omitempty"  bson:"description,omitempty"`
}

// Profile is the public face of a user. Exactly one exists per user and its
// handle is unique across all profiles.
type Profile struct {
	ID             ID           `json:"id"                       bson:"_id"`
	User           ID           `json:"user"                     bson:"user"`
	Handle         string       `json:"handle"                   bson:"handle"`
	Company        string       `json:"company,omitempty"        bson:"company,omitempty"`
	Website        string       `json:"website,omitempty"        bson:"website,omitempty"`
	Location       string       `json:"location,omitempty"       bson:"location,omitempty"`
	Status         string       `json:"status"                   bson:"status"`
	Skills         []string     `json:"skills"                   bson:"skills"`
	Bio            string       `json:"bio,omitempty"            bson:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty" bson:"githubusername,omitempty"`
	Social         *Social      `json:"social,omitempty"         bson:"social,omitempty"`
	Experience     []Experience `json:"experience"               bson:"experience"`
	Education      []Education  `json:"education"                bson:"education"`
	Date           time.Time    `json:"date"                     bson:"date"`
}

// ProfileFields are the user-editable scalar parts of a profile.
type ProfileFields struct {
	Handle         string
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Social         *Social
}

// NewProfile creates a profile for user. Experience and education entries
// without an ID are assigned one.
func NewProfile(user ID, f ProfileFields, experience []Experience, education []Education) *Profile {
	p := &Profile{
		ID:         NewID(),
		User:       user,
		Experience: make([]Experience, 0, len(experience)),
		Education:  make([]Education, 0, len(education)),
		Date:       time.Now().UTC(),
	}
	p.Apply(f)
	for _, e := range experience {
		if e.ID.IsZero() {
			e.ID = NewID()
		}
		p.Experience = append(p.Experience, e)
	}
	for _, e := range education {
		if e.ID.IsZero() {
			e.ID = NewID()
		}
		p.Education = append(p.Education, e)
	}
	return p
}

// Apply overwrites the scalar fields of p with f.
func (p *Profile) Apply(f ProfileFields) {
	p.Handle = f.Handle
	p.Company = f.Company
	p.Website = f.Website
	p.Location = f.Location
	p.Status = f.Status
	p.Skills = append([]string(nil), f.Skills...)
	p.Bio = f.Bio
	p.GithubUsername = f.GithubUsername
	p.Social = f.Social
}

// AddExperience prepends e, so the most recent entry comes first.
func (p *Profile) AddExperience(e Experience) error {
	if len(p.Experience) >= MaxExperience {
		return ErrExperienceLimitReached
	}
	if e.ID.IsZero() {
		e.ID = NewID()
	}
	p.Experience = append([]Experience{e}, p.Experience...)
	return nil
}

// RemoveExperience deletes the entry with the given id.
func (p *Profile) RemoveExperience(id ID) error {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return ErrNoExperience
}

// AddEducation prepends e, so the most recent entry comes first.
func (p *Profile) AddEducation(e Education) error {
	if len(p.Education) >= MaxEducation {
		return ErrEducationLimitReached
	}
	if e.ID.IsZero() {
		e.ID = NewID()
	}
	p.Education = append([]Education{e}, p.Education...)
	return nil
}

// RemoveEducation deletes the entry with the given id.
func (p *Profile) RemoveEducation(id ID) error {
	for i := range p.Education {
		if p.Education[i].ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return ErrNoEducation
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Skills = append([]string(nil), p.Skills...)
	c.Experience = append([]Experience{}, p.Experience...)
	c.Education = append([]Education{}, p.Education...)
	if p.Social != nil {
		s := *p.Social
		c.Social = &s
	}
	return &c
}
