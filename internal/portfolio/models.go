package portfolio

import (
	"bytes"
	"encoding/json"
	"time"
)

// ProfileID is the fixed key of the singleton profile document.
const ProfileID = "portfolio"

// Profile is the site owner's biography, experience and projects. Exactly one
// exists; writes replace every content field.
type Profile struct {
	ID          string            `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string            `json:"name" bson:"name"`
	Title       string            `json:"title" bson:"title"`
	Email       string            `json:"email" bson:"email"`
	About       string            `json:"about" bson:"about"`
	Skills      []string          `json:"skills" bson:"skills"`
	Experience  []Experience      `json:"experience" bson:"experience"`
	Projects    []Project         `json:"projects" bson:"projects"`
	SocialLinks map[string]string `json:"socialLinks,omitempty" bson:"socialLinks,omitempty"`
	Contact     *ContactInfo      `json:"contact,omitempty" bson:"contact,omitempty"`
	CreatedAt   time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
}

type Experience struct {
	Position    string `json:"position" bson:"position"`
	Company     string `json:"company" bson:"company"`
	Duration    string `json:"duration" bson:"duration"`
	Description Lines  `json:"description" bson:"description"`
}

type Project struct {
	Title        string   `json:"title" bson:"title"`
	Tech         string   `json:"tech,omitempty" bson:"tech,omitempty"`
	Technologies []string `json:"technologies,omitempty" bson:"technologies,omitempty"`
	Description  string   `json:"description" bson:"description"`
	Github       string   `json:"github" bson:"github"`
	Live         string   `json:"live" bson:"live"`
}

type ContactInfo struct {
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Linkedin string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Github   string `json:"github,omitempty" bson:"github,omitempty"`
}

// Lines is a list of text lines. In JSON it also accepts a single string,
// which becomes one line; an empty string becomes no lines.
type Lines []string

func (l *Lines) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*l = Lines{}
		} else {
			*l = Lines{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// Normalize replaces missing lists with empty ones so they serialize as [].
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	for i := range p.Experience {
		if p.Experience[i].Description == nil {
			p.Experience[i].Description = Lines{}
		}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
}

// Content returns a copy of p without store-managed fields (id, timestamps).
func (p Profile) Content() Profile {
	p.ID = ""
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
	return p
}
