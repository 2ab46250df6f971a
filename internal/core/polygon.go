package core

// GeoPolygon is a closed polygon in degree space. The ring is implicit:
// the final vertex connects back to the first. Callers must supply
// non-self-intersecting polygons with positive area.
type GeoPolygon []GeoPosition

// BoundingRect returns the axis-aligned bounds of the polygon.
// A nil or empty polygon yields the zero rectangle.
func (p GeoPolygon) BoundingRect() GeoRect {
	if len(p) == 0 {
		return GeoRect{}
	}
	r := GeoRect{
		MinLon: p[0].Lon, MaxLon: p[0].Lon,
		MinLat: p[0].Lat, MaxLat: p[0].Lat,
	}
	for _, v := range p[1:] {
		if v.Lon < r.MinLon {
			r.MinLon = v.Lon
		}
		if v.Lon > r.MaxLon {
			r.MaxLon = v.Lon
		}
		if v.Lat < r.MinLat {
			r.MinLat = v.Lat
		}
		if v.Lat > r.MaxLat {
			r.MaxLat = v.Lat
		}
	}
	return r
}

// ContainsPoint reports whether pos lies inside the polygon using the
// even-odd rule: a ray cast toward +lon counts edge crossings.
func (p GeoPolygon) ContainsPoint(pos GeoPosition) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		vi, vj := p[i], p[j]
		if (vi.Lat > pos.Lat) != (vj.Lat > pos.Lat) {
			cross := (vj.Lon-vi.Lon)*(pos.Lat-vi.Lat)/(vj.Lat-vi.Lat) + vi.Lon
			if pos.Lon < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
