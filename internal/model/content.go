package model

import "time"

// ProjectStatus represents the lifecycle state of a portfolio project.
type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "completed"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectPlanned    ProjectStatus = "planned"
)

// IsValid checks if the project status is one of the known values.
func (s ProjectStatus) IsValid() bool {
	return s == ProjectCompleted || s == ProjectInProgress || s == ProjectPlanned
}

// PersonalInfo is the site owner's profile. At most one row exists;
// writes go through the singleton upsert path.
type PersonalInfo struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Title           string    `json:"title,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	ResumeURL       string    `json:"resume_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ContactDetails is the owner's contact card. Singleton, like PersonalInfo.
type ContactDetails struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Location    string    `json:"location,omitempty"`
	Website     string    `json:"website,omitempty"`
	LinkedinURL string    `json:"linkedin_url,omitempty"`
	GithubURL   string    `json:"github_url,omitempty"`
	TwitterURL  string    `json:"twitter_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project is a portfolio project entry.
type Project struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	LongDescription string        `json:"long_description,omitempty"`
	Technologies    []string      `json:"technologies,omitempty"`
	ProjectURL      string        `json:"project_url,omitempty"`
	GithubURL       string        `json:"github_url,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	Featured        bool          `json:"featured"`
	Status          ProjectStatus `json:"status"`
	StartDate       *time.Time    `json:"start_date,omitempty"`
	EndDate         *time.Time    `json:"end_date,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Education is one education history entry.
type Education struct {
	ID           string     `json:"id"`
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  string     `json:"description,omitempty"`
	Grade        string     `json:"grade,omitempty"`
	IsCurrent    bool       `json:"is_current"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Certificate is one certification entry.
type Certificate struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	IssuingOrganization string     `json:"issuing_organization"`
	IssueDate           *time.Time `json:"issue_date,omitempty"`
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
	CredentialID        string     `json:"credential_id,omitempty"`
	CredentialURL       string     `json:"credential_url,omitempty"`
	Description         string     `json:"description,omitempty"`
	ImageURL            string     `json:"image_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Skill is one skill entry. Skills carry no updated_at column.
type Skill struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category,omitempty"`
	ProficiencyLevel int       `json:"proficiency_level,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
