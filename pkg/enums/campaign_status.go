package enums

// CampaignStatus mirrors the status strings donors see in the UI. The
// Portuguese values are part of the public API contract.
type CampaignStatus string

const (
	CampaignStatusActive CampaignStatus = "Ativa"
	CampaignStatusClosed CampaignStatus = "Encerrada"
	CampaignStatusPaused CampaignStatus = "Pausada"
)

var validCampaignStatuses = []CampaignStatus{
	CampaignStatusActive,
	CampaignStatusClosed,
	CampaignStatusPaused,
}

// String implements fmt.Stringer.
func (c CampaignStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CampaignStatus.
func (c CampaignStatus) IsValid() bool {
	for _, candidate := range validCampaignStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsActive reports whether donors may still join the campaign.
func (c CampaignStatus) IsActive() bool {
	return c == CampaignStatusActive
}
