package domain

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Vehicle struct {
	ID       string  `json:"id"`
	Plate    string  `json:"plate"`
	Model    string  `json:"model"`
	Color    string  `json:"color,omitempty"`
	ClientID *string `json:"client_id,omitempty"`
}
