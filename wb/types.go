package wb

import (
	"encoding/json"
	"fmt"
	"time"
)

// Page is one batch returned by the super_observations endpoint.
type Page struct {
	Observations []Observation `json:"observations"`
	HasNextPage  bool          `json:"has_next_page"`
	NextPage     string        `json:"next_page,omitempty"`
}

// rawPage mirrors Page with pointers so that missing fields can be told
// apart from zero values.
type rawPage struct {
	Observations *[]Observation `json:"observations"`
	HasNextPage  *bool          `json:"has_next_page"`
	NextPage     string         `json:"next_page"`
}

// decodePage parses and checks one page body.
func decodePage(body []byte) (Page, error) {
	var raw rawPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if raw.Observations == nil {
		return Page{}, fmt.Errorf("%w: missing observations", ErrMalformedResponse)
	}
	if raw.HasNextPage == nil {
		return Page{}, fmt.Errorf("%w: missing has_next_page", ErrMalformedResponse)
	}
	if *raw.HasNextPage && raw.NextPage == "" {
		return Page{}, fmt.Errorf("%w: has_next_page is set but next_page is empty", ErrMalformedResponse)
	}
	for i, o := range *raw.Observations {
		if o.Timestamp == nil {
			return Page{}, fmt.Errorf("%w: observation %d (id %q) has no timestamp", ErrMalformedResponse, i, o.ID)
		}
	}
	return Page{
		Observations: *raw.Observations,
		HasNextPage:  *raw.HasNextPage,
		NextPage:     raw.NextPage,
	}, nil
}

// Observation is a single WindBorne super observation.
// See https://windbornesystems.com/docs/api#super_observations
//
// Physical quantities are pointers; nil means the service did not report them.
type Observation struct {
	ID          string   `json:"id,omitempty"`
	MissionID   string   `json:"mission_id,omitempty"`
	MissionName string   `json:"mission_name,omitempty"`
	Timestamp   *float64 `json:"timestamp"`

	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Altitude    *float64 `json:"altitude"`    // meters
	Pressure    *float64 `json:"pressure"`    // hPa
	Temperature *float64 `json:"temperature"` // degrees Celsius
	Humidity    *float64 `json:"humidity"`    // percent
	SpeedU      *float64 `json:"speed_u"`     // m/s, eastward
	SpeedV      *float64 `json:"speed_v"`     // m/s, northward
}

// Time returns the observation time in UTC.
func (o Observation) Time() time.Time {
	if o.Timestamp == nil {
		return time.Time{}
	}
	sec := int64(*o.Timestamp)
	nsec := int64((*o.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}
