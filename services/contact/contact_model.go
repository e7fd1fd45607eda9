package contact

import "time"

// Profile is the portal view of a Dataverse contact
type Profile struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	JobTitle  string     `json:"jobTitle"`
	Company   *Company   `json:"company,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type Company struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Revenue       string `json:"revenue,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Website       string `json:"website,omitempty"`
}

// ProfileUpdate lists the fields a portal user may change on their contact
type ProfileUpdate struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=50"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	JobTitle  *string `json:"jobTitle" binding:"omitempty,max=100"`
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil && p.JobTitle == nil
}

type ListParams struct {
	Search string
	Top    int
}

type ProfilePage struct {
	Profiles []Profile `json:"profiles"`
	Total    int       `json:"total"`
}
