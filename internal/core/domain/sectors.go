package domain

// Sector is a ministry group. The list is fixed reference data.
type Sector struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// GlobalSectorName labels church-wide events
const GlobalSectorName = "Geral (Toda Igreja)"

// Sectors is the reference list known to every component
var Sectors = []Sector{
	{ID: "1", Name: "Louvor & Adoração", Color: "purple"},
	{ID: "2", Name: "Jovens", Color: "blue"},
	{ID: "3", Name: "Infantil", Color: "yellow"},
	{ID: "4", Name: "Diaconia", Color: "emerald"},
	{ID: "5", Name: "Missões", Color: "orange"},
}

// FindSector looks up a sector by id
func FindSector(id string) (Sector, bool) {
	for _, s := range Sectors {
		if s.ID == id {
			return s, true
		}
	}
	return Sector{}, false
}

// SectorName returns a display name for a sector id, including "global"
func SectorName(id string) string {
	if id == GlobalSectorID {
		return GlobalSectorName
	}
	if s, ok := FindSector(id); ok {
		return s.Name
	}
	return ""
}

// ValidEventSector reports whether id is "global" or a known sector
func ValidEventSector(id string) bool {
	if id == GlobalSectorID {
		return true
	}
	_, ok := FindSector(id)
	return ok
}
