package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the coordinate the way the storefront shows it to users.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

// UnmarshalJSON accepts {"lat", "lng"}, a GeoJSON Point and a (E)WKT
// "POINT (lng lat)" string. GeoJSON and WKT put longitude first.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return c.parseWKT(s)
	}

	var obj struct {
		Lat         *float64  `json:"lat"`
		Lng         *float64  `json:"lng"`
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid coordinate: %w", err)
	}

	switch {
	case strings.EqualFold(obj.Type, "Point") && len(obj.Coordinates) >= 2:
		c.Lng, c.Lat = obj.Coordinates[0], obj.Coordinates[1]
	case obj.Lat != nil && obj.Lng != nil:
		c.Lat, c.Lng = *obj.Lat, *obj.Lng
	default:
		return errors.New("invalid coordinate: want lat/lng or a GeoJSON Point")
	}
	return nil
}

func (c *Coordinate) parseWKT(s string) error {
	wkt := strings.TrimSpace(s)
	if _, rest, ok := strings.Cut(wkt, ";"); ok && strings.HasPrefix(strings.ToUpper(wkt), "SRID=") {
		wkt = strings.TrimSpace(rest)
	}

	upper := strings.ToUpper(wkt)
	if !strings.HasPrefix(upper, "POINT") {
		return fmt.Errorf("invalid coordinate %q", s)
	}
	body := strings.TrimSpace(wkt[len("POINT"):])
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return fmt.Errorf("invalid coordinate %q", s)
	}

	parts := strings.Fields(body[1 : len(body)-1])
	if len(parts) < 2 {
		return fmt.Errorf("invalid coordinate %q", s)
	}
	lng, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	c.Lat, c.Lng = lat, lng
	return nil
}
