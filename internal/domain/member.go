package domain

// CardType is the discount tier printed on the benefit card.
type CardType string

const (
	CardTypePrata    CardType = "Prata"
	CardTypeOuro     CardType = "Ouro"
	CardTypeDiamante CardType = "Diamante"
)

// MemberStatus represents lifecycle states for a beneficiary.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "Ativo"
	MemberStatusInactive MemberStatus = "Inativo"
)

// Member is the domain model for program beneficiaries and administrators.
// The JSON shape is also the persisted shape; Password is plaintext by the
// program's documented credential scheme and absent until first set.
type Member struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	CPF         string       `json:"cpf"`
	CardType    CardType     `json:"cardType"`
	ExpiryDate  string       `json:"expiryDate"` // MM/YYYY
	BirthDate   string       `json:"birthDate"`  // DD/MM/YYYY
	Status      MemberStatus `json:"status"`
	IsValidated bool         `json:"isValidated"`
	Password    string       `json:"password,omitempty"`
}

// HasPassword reports whether the member has completed first-access
// password creation.
func (m Member) HasPassword() bool {
	return m.Password != ""
}
