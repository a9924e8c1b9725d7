package dto

// ProfileRequest body para PUT /api/profile. Campos nil se mantienen.
type ProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Logo    *string `json:"logo,omitempty"` // data URL
}

// ProfileResponse datos de la oficina.
type ProfileResponse struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Logo    string `json:"logo,omitempty"`
}
