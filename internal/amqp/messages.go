package amqp

import (
	"encoding/json"
	"time"
)

// ReportRunMessage summarizes one completed report run.
type ReportRunMessage struct {
	Generated     time.Time `json:"generated"`
	TotalCents    int64     `json:"total_cents"`
	DonationCount int       `json:"donation_count"`
	Artifacts     []string  `json:"artifacts"`
}

func NewReportRunMessage(generated time.Time, totalCents int64, donationCount int, artifacts []string) *ReportRunMessage {
	return &ReportRunMessage{
		Generated:     generated,
		TotalCents:    totalCents,
		DonationCount: donationCount,
		Artifacts:     artifacts,
	}
}

func (m *ReportRunMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportRunMessageFromJSON(data []byte) (*ReportRunMessage, error) {
	var msg ReportRunMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
