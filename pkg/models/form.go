package models

// Represents the data structure coming from the site's contact form
type ContactForm struct {
	Email        string `json:"email" binding:"required,email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Unsubscribed bool   `json:"unsubscribed"`
	AudienceID   string `json:"audienceId"`
}

// ContactRecord is the contact as submitted to the CRM. It is never stored locally.
type ContactRecord struct {
	Email        string
	FirstName    string
	LastName     string
	Unsubscribed bool
	AudienceID   string // Falls back to the configured default audience when empty
}

// Record converts the form into the record sent to the CRM
func (f ContactForm) Record() ContactRecord {
	return ContactRecord{
		Email:        f.Email,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Unsubscribed: f.Unsubscribed,
		AudienceID:   f.AudienceID,
	}
}
