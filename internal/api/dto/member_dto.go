package dto

import "github.com/E72-BI/cartao-santa-casa/internal/domain"

// UpdateMemberRequest carries an admin edit of a directory record. The
// identifier comes from the route; all other fields replace the record.
type UpdateMemberRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CPF         string `json:"cpf"`
	CardType    string `json:"cardType"`
	ExpiryDate  string `json:"expiryDate"`
	BirthDate   string `json:"birthDate"`
	Status      string `json:"status"`
	IsValidated bool   `json:"isValidated"`
	Password    string `json:"password,omitempty"`
}

// ToMember builds the replacement record.
func (r UpdateMemberRequest) ToMember(id string) domain.Member {
	return domain.Member{
		ID:          id,
		Name:        r.Name,
		Email:       r.Email,
		CPF:         r.CPF,
		CardType:    domain.CardType(r.CardType),
		ExpiryDate:  r.ExpiryDate,
		BirthDate:   r.BirthDate,
		Status:      domain.MemberStatus(r.Status),
		IsValidated: r.IsValidated,
		Password:    r.Password,
	}
}

// ImportRequest carries raw spreadsheet content handed over by the
// file-picker collaborator.
type ImportRequest struct {
	Content string `json:"content"`
}

// AssetRequest carries an image re-encoded as a self-describing data string.
type AssetRequest struct {
	DataURI string `json:"dataUri"`
}
