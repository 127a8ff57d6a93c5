package dto

// SignoffRequest payload for the staff absence form. Dates arrive as
// YYYY-MM-DD and are reformatted to DD-MM-YYYY before forwarding. The
// "eindatum" spelling is the wire format; keep it as-is.
type SignoffRequest struct {
	Naam       string `json:"naam"`
	StartDatum string `json:"startdatum"`
	EindDatum  string `json:"eindatum"`
	Reden      string `json:"reden"`
}
