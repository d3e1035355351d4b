package model

import "slices"

// Sector is an organizational unit of a company
type Sector struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Company is an evaluated organization. AccessCode is the credential employees
// use to open the survey and is masked in logs.
type Company struct {
	ID             string   `json:"id"`
	TradeName      string   `json:"trade_name"`
	LegalName      string   `json:"legal_name"`
	TaxID          string   `json:"tax_id"`
	AccessCode     string   `json:"access_code,omitempty" masq:"secret"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	TotalEmployees int      `json:"total_employees,omitempty"`
	Sectors        []Sector `json:"sectors"`
}

// Sector looks up a sector by ID
func (c *Company) Sector(sectorID string) (Sector, bool) {
	for _, s := range c.Sectors {
		if s.ID == sectorID {
			return s, true
		}
	}
	return Sector{}, false
}

// Clone returns a deep copy of the company
func (c *Company) Clone() *Company {
	cp := *c
	cp.Sectors = slices.Clone(c.Sectors)
	return &cp
}
