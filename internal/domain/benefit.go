package domain

// Benefit describes one entry of the fixed benefit catalog shown on the
// member dashboard.
type Benefit struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Discount    string `json:"discount"`
	Description string `json:"description"`
}

// BenefitCatalog returns the program's catalog. The catalog is fixed; it is
// returned as a fresh slice so callers may filter it freely.
func BenefitCatalog() []Benefit {
	return []Benefit{
		{ID: "1", Title: "Consultas Eletivas", Category: "Médico", Discount: "Até 40%", Description: "Agende consultas com especialistas em nossa rede própria."},
		{ID: "2", Title: "Exames Laboratoriais", Category: "Diagnóstico", Discount: "Até 50%", Description: "Descontos exclusivos em exames de sangue e imagem."},
		{ID: "3", Title: "Medicamentos de Uso Contínuo", Category: "Farmácia", Discount: "Até 20%", Description: "Válido em farmácias parceiras mediante apresentação do cartão."},
	}
}

// FilterBenefits returns catalog entries matching the category, or the whole
// catalog when category is empty.
func FilterBenefits(catalog []Benefit, category string) []Benefit {
	if category == "" {
		return catalog
	}
	filtered := make([]Benefit, 0, len(catalog))
	for _, b := range catalog {
		if b.Category == category {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
