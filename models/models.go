package models

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Location struct {
	Lon, Lat float64
}

func NewGeoPoint(lng, lat float64) Location {
	return Location{
		Lon: lng,
		Lat: lat,
	}
}

func (g *Location) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case string:
		var err error
		data, err = hex.DecodeString(v)
		if err != nil {
			return err
		}
	case []byte:
		data = v
	default:
		return fmt.Errorf("expected string or []byte, got %T", value)
	}

	t, err := ewkb.Unmarshal(data)
	if err != nil {
		return err
	}

	if point, ok := t.(*geom.Point); ok {
		g.Lon = point.X()
		g.Lat = point.Y()

		return nil
	}

	return fmt.Errorf("expected Point, got %T", t)
}

func (loc Location) GormDataType() string {
	return "geometry"
}

func (loc Location) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	return clause.Expr{
		SQL:  "ST_PointFromText(?)",
		Vars: []interface{}{fmt.Sprintf("POINT(%f %f)", loc.Lon, loc.Lat)},
	}
}

// Site is one candidate Emergency Interim Housing location. Proximities are
// straight-line distances in meters; SentimentScore is nominally 0-100 but is
// carried through unvalidated.
type Site struct {
	ID                  uint64   `gorm:"primaryKey" json:"id"`
	Name                string   `json:"name"`
	Location            Location `json:"location"`
	ProximityToLibrary  float64  `json:"proximity_to_library"`
	ProximityToHospital float64  `json:"proximity_to_hospital"`
	SentimentScore      float64  `json:"sentiment_score"`
}

func (s *Site) TableName() string {
	return "sites"
}

func (s *Site) Stringify() string {
	return fmt.Sprintf("%s: Library %gm, Hospital %gm, Sentiment %g", s.Name, s.ProximityToLibrary, s.ProximityToHospital, s.SentimentScore)
}
