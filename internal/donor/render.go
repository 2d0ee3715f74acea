package donor

// Row is a render-ready projection of one campaign for the current donor.
type Row struct {
	CampaignID     string
	Name           string
	BloodType      string
	Location       string
	ButtonLabel    string
	ButtonEnabled  bool
	RowHighlighted bool
	Placeholder    bool
}

const placeholderMessage = "Nenhuma campanha disponível no momento."

// Rows projects the state snapshot into row descriptors, preserving the
// server-provided campaign order. An empty snapshot yields one placeholder
// row.
func Rows(state *State) []Row {
	campaigns := state.Campaigns()
	if len(campaigns) == 0 {
		return []Row{{Name: placeholderMessage, Placeholder: true}}
	}

	rows := make([]Row, 0, len(campaigns))
	for _, c := range campaigns {
		row := Row{
			CampaignID: c.ID,
			Name:       c.Title,
			BloodType:  c.BloodType,
			Location:   c.Location,
		}
		switch state.DeriveStatus(c.ID) {
		case StatusJoinable:
			row.ButtonLabel = "Participar"
			row.ButtonEnabled = true
		case StatusPending:
			row.ButtonLabel = "Participar"
		case StatusJoined:
			row.ButtonLabel = "Participando ✓"
			row.RowHighlighted = true
		case StatusClosed:
			row.ButtonLabel = "Encerrada"
		}
		rows = append(rows, row)
	}
	return rows
}
