// Package content loads the portfolio's read-only records (profile,
// projects, skills and blog entries) from YAML and Markdown files.
package content

import "time"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	StatusComingSoon ProjectStatus = "coming-soon"
	StatusBuilding   ProjectStatus = "building"
	StatusLive       ProjectStatus = "live"
)

// Label is the badge text shown on a project card.
func (s ProjectStatus) Label() string {
	switch s {
	case StatusComingSoon:
		return "Coming Soon"
	case StatusBuilding:
		return "In Progress"
	case StatusLive:
		return "Live"
	}
	return string(s)
}

// SkillLevel is a coarse proficiency rating.
type SkillLevel string

const (
	LevelLearning     SkillLevel = "Learning"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelProficient   SkillLevel = "Proficient"
)

// AllCategory disables the skill filter.
const AllCategory = "All"

type Project struct {
	ID          int           `yaml:"id" validate:"required,gt=0"`
	Filename    string        `yaml:"filename"`
	Title       string        `yaml:"title" validate:"required"`
	Description string        `yaml:"description"`
	TechStack   []string      `yaml:"tech_stack"`
	GitHubURL   string        `yaml:"github_url" validate:"omitempty,url"`
	LiveURL     string        `yaml:"live_url" validate:"omitempty,url"`
	Status      ProjectStatus `yaml:"status" validate:"required,oneof=coming-soon building live"`
	Image       string        `yaml:"image" validate:"omitempty,image_name"`
}

type Skill struct {
	ID          int        `yaml:"id" validate:"required,gt=0"`
	Name        string     `yaml:"name" validate:"required"`
	Category    string     `yaml:"category" validate:"required,ne=All"`
	Level       SkillLevel `yaml:"level" validate:"required,oneof=Learning Intermediate Proficient"`
	Description string     `yaml:"description"`
}

// BlogEntry is a post preview. Entries without a body are placeholders
// and have no page of their own.
type BlogEntry struct {
	ID        int       `yaml:"id" validate:"required,gt=0"`
	Filename  string    `yaml:"-"`
	Slug      string    `yaml:"slug" validate:"required"`
	Title     string    `yaml:"title" validate:"required"`
	Excerpt   string    `yaml:"excerpt"`
	Date      string    `yaml:"date" validate:"omitempty,datetime=2006-01-02"`
	ReadTime  string    `yaml:"read_time"`
	Link      string    `yaml:"link"`
	Published time.Time `yaml:"-"`
	Body      string    `yaml:"-"`
}

// HasBody reports whether the entry has rendered content.
func (b BlogEntry) HasBody() bool { return b.Body != "" }

// DisplayDate formats the publish date the way cards show it.
func (b BlogEntry) DisplayDate() string {
	if b.Published.IsZero() {
		return "Coming soon"
	}
	return b.Published.Format("Jan 02, 2006")
}

// Link is an outbound profile link.
type Link struct {
	Label string `yaml:"label" validate:"required"`
	URL   string `yaml:"url" validate:"required"`
	Icon  string `yaml:"icon"`
}

// QuickLink points at an in-page section.
type QuickLink struct {
	ID          string `yaml:"id" validate:"required"`
	Label       string `yaml:"label" validate:"required"`
	Description string `yaml:"description"`
}

// Site is the profile copy shared by hero, about, contact and footer.
type Site struct {
	Name            string      `yaml:"name" validate:"required"`
	Role            string      `yaml:"role"`
	Tagline         string      `yaml:"tagline"`
	Location        string      `yaml:"location"`
	Email           string      `yaml:"email" validate:"omitempty,email"`
	Avatar          string      `yaml:"avatar"`
	ResumeURL       string      `yaml:"resume_url"`
	ScheduleURL     string      `yaml:"schedule_url" validate:"omitempty,url"`
	Available       bool        `yaml:"available"`
	About           []string    `yaml:"about"`
	Socials         []Link      `yaml:"socials" validate:"dive"`
	QuickLinks      []QuickLink `yaml:"quick_links" validate:"unique=ID,dive"`
	SkillCategories []string    `yaml:"skill_categories"`
}

// Catalog is one consistent snapshot of all records.
type Catalog struct {
	Site     Site
	Projects []Project   `validate:"unique=ID,dive"`
	Skills   []Skill     `validate:"unique=ID,dive"`
	Blog     []BlogEntry `validate:"unique=ID,unique=Slug,dive"`
}
