package domain

const (
	PartyTypeCustomer = "CUSTOMER"
	PartyTypeVendor   = "VENDOR"
)

// ValidPartyType reports whether t is one of the enumerated party types.
func ValidPartyType(t string) bool {
	return t == PartyTypeCustomer || t == PartyTypeVendor
}

// Party is a customer or vendor the books are kept against.
type Party struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Address      string `json:"address"`
	BusinessName string `json:"business_name"`
	PartyType    string `json:"party_type"`
}
