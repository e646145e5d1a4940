package dto

// ScheduleDemoRequest captures a demo request from the public site
type ScheduleDemoRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Company     string `json:"company,omitempty" validate:"omitempty,max=200"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=50"`
	PreferredAt string `json:"preferred_at,omitempty" validate:"omitempty,max=100"`
}

// ContactSalesRequest captures a sales inquiry from the public site
type ContactSalesRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company,omitempty" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=5,max=5000"`
}
