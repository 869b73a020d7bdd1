package domain

type Airport struct {
	Code    string `json:"code"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type TravelClass struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type ServiceOffering struct {
	TravelClassID string `json:"travel_class_id"`
	ServiceID     string `json:"service_id"`
	ServiceName   string `json:"service_name"`
	Offered       bool   `json:"offered"`
}
