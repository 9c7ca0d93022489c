package entity

import (
	"encoding/json"
	"fmt"
)

// GeoPoint is stored as two embedded columns and serialized as a
// GeoJSON Point: {"type":"Point","coordinates":[lng,lat]} — longitude
// first, matching the wire format of the dashboard client.
type GeoPoint struct {
	Lat float64 `json:"-"`
	Lng float64 `json:"-"`
}

// IsZero reports whether the point was never set. (0,0) is in the
// Atlantic and never a real pickup or delivery point here.
func (p GeoPoint) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

type geoJSON struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSON{Type: "Point", Coordinates: [2]float64{p.Lng, p.Lat}})
}

func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var g geoJSON
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	if g.Type != "" && g.Type != "Point" {
		return fmt.Errorf("unsupported geometry type %q", g.Type)
	}
	p.Lng = g.Coordinates[0]
	p.Lat = g.Coordinates[1]
	return nil
}
