package dto

type ProfessionalCardDTO struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	Address     string  `json:"address"`
	Pin         string  `json:"pin"`
	ServiceID   uint    `json:"service_id"`
	ServiceType string  `json:"service_type"`
	BasePrice   float64 `json:"base_price"`
	Description string  `json:"description"`
	Experience  int     `json:"experience"`

	Rating    float64 `json:"rating"`
	JobsCount int64   `json:"jobs_count"`
}
