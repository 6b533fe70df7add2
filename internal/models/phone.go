package models

import "fmt"

// Camera describes a phone's main camera setup.
type Camera struct {
	Main string `json:"main"` // e.g. "50MP f/1.8"
	OIS  bool   `json:"ois"`  // optical image stabilization
}

// PhoneRecord is one device recommendation generated by the model. Records
// are scoped to the response that carries them; IDs are only unique within
// that response's phone list.
type PhoneRecord struct {
	ID       string   `json:"id"`
	Brand    string   `json:"brand"`
	Model    string   `json:"model"`
	Price    float64  `json:"price"` // INR unless the reply text says otherwise
	OS       string   `json:"os"`
	Size     string   `json:"size"` // "compact", "medium" or "large"
	Display  string   `json:"display"`
	Camera   Camera   `json:"camera"`
	Battery  string   `json:"battery"`
	Charging string   `json:"charging"`
	Tags     []string `json:"tags"`
}

// Validate checks the fields a record cannot be rendered without. A record
// failing validation is dropped at interpretation time rather than passed
// through to the client.
func (p *PhoneRecord) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("phone record missing id")
	}
	if p.Brand == "" {
		return fmt.Errorf("phone record %s missing brand", p.ID)
	}
	if p.Model == "" {
		return fmt.Errorf("phone record %s missing model", p.ID)
	}
	// JSON numbers default to zero when the field is absent, so a missing
	// price and a zero price are indistinguishable here. Both are rejected.
	if p.Price <= 0 {
		return fmt.Errorf("phone record %s missing or invalid price %.2f", p.ID, p.Price)
	}
	return nil
}
