package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ValentinKolb/kvql/lib/reply"
)

// Geo sets are sorted sets whose scores are 52 bit interleaved geohashes,
// the same encoding redis uses, so GEOADD members can be read with ZRANGE.
const (
	geoStep      = 26
	geoLatMin    = -85.05112878
	geoLatMax    = 85.05112878
	geoLonMin    = -180.0
	geoLonMax    = 180.0
	earthRadiusM = 6372797.560856
)

// GeoMember is a member with its position, used by GeoAdd.
type GeoMember struct {
	Longitude float64
	Latitude  float64
	Member    string
}

// GeoSort orders GeoRadius results by distance.
type GeoSort uint8

const (
	GeoSortNone GeoSort = iota
	GeoSortAsc
	GeoSortDesc
)

// GeoRadiusOptions selects the optional parts of a radius query.
type GeoRadiusOptions struct {
	WithCoord bool
	WithDist  bool
	WithHash  bool
	Count     int // 0 means no limit
	Sort      GeoSort
}

// GeoUnit returns the number of meters in the given unit (m, km, ft, mi).
func GeoUnit(unit string) (float64, error) {
	switch strings.ToLower(unit) {
	case "m":
		return 1, nil
	case "km":
		return 1000, nil
	case "ft":
		return 0.3048, nil
	case "mi":
		return 1609.34, nil
	default:
		return 0, fmt.Errorf("ERR unsupported unit provided. please use M, KM, FT, MI")
	}
}

// GeoAdd stores members in the geo set under key and returns the number of new members.
func (e *Engine) GeoAdd(key string, members ...GeoMember) (int64, error) {
	tuples := make([]reply.Tuple, 0, len(members))
	for _, m := range members {
		if m.Longitude < geoLonMin || m.Longitude > geoLonMax || m.Latitude < geoLatMin || m.Latitude > geoLatMax {
			return 0, fmt.Errorf("ERR invalid longitude,latitude pair %f,%f", m.Longitude, m.Latitude)
		}
		tuples = append(tuples, reply.Tuple{Element: m.Member, Score: float64(geohashEncode(m.Longitude, m.Latitude))})
	}
	return e.ZAdd(key, tuples...)
}

// GeoPos returns the positions of the members, nil for missing members.
func (e *Engine) GeoPos(key string, members ...string) ([]*reply.GeoCoordinate, error) {
	positions := make([]*reply.GeoCoordinate, len(members))
	_, err := e.view(key, KindZSet, func(obj *object) error {
		for i, m := range members {
			if score, ok := obj.zset[m]; ok {
				c := geohashDecode(uint64(score))
				positions[i] = &c
			}
		}
		return nil
	})
	return positions, err
}

// GeoDist returns the distance between two members in the given unit.
func (e *Engine) GeoDist(key, from, to, unit string) (float64, bool, error) {
	factor, err := GeoUnit(unit)
	if err != nil {
		return 0, false, err
	}
	positions, err := e.GeoPos(key, from, to)
	if err != nil || positions[0] == nil || positions[1] == nil {
		return 0, false, err
	}
	return geoDistance(*positions[0], *positions[1]) / factor, true, nil
}

// GeoRadius returns the members within radius of the given center.
func (e *Engine) GeoRadius(key string, center reply.GeoCoordinate, radius float64, unit string, opts GeoRadiusOptions) ([]reply.GeoRadiusResponse, error) {
	factor, err := GeoUnit(unit)
	if err != nil {
		return nil, err
	}
	limit := radius * factor

	type hit struct {
		member string
		hash   uint64
		coord  reply.GeoCoordinate
		dist   float64
	}
	var hits []hit
	_, err = e.view(key, KindZSet, func(obj *object) error {
		for _, t := range sortedTuples(obj.zset) {
			hash := uint64(t.Score)
			coord := geohashDecode(hash)
			if d := geoDistance(center, coord); d <= limit {
				hits = append(hits, hit{member: t.Element, hash: hash, coord: coord, dist: d})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch opts.Sort {
	case GeoSortAsc:
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	case GeoSortDesc:
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist > hits[j].dist })
	}
	if opts.Count > 0 && len(hits) > opts.Count {
		hits = hits[:opts.Count]
	}

	results := make([]reply.GeoRadiusResponse, 0, len(hits))
	for _, h := range hits {
		r := reply.GeoRadiusResponse{Member: h.member}
		if opts.WithDist {
			r.Distance = math.Round(h.dist/factor*10000) / 10000
		}
		if opts.WithCoord {
			c := h.coord
			r.Coordinate = &c
		}
		if opts.WithHash {
			r.RawScore = int64(h.hash)
		}
		results = append(results, r)
	}
	return results, nil
}

// GeoRadiusByMember is GeoRadius centered on the position of an existing member.
func (e *Engine) GeoRadiusByMember(key, member string, radius float64, unit string, opts GeoRadiusOptions) ([]reply.GeoRadiusResponse, error) {
	positions, err := e.GeoPos(key, member)
	if err != nil {
		return nil, err
	}
	if positions[0] == nil {
		return nil, fmt.Errorf("ERR could not decode requested zset member")
	}
	return e.GeoRadius(key, *positions[0], radius, unit, opts)
}

// --------------------------------------------------------------------------
// Geohash
// --------------------------------------------------------------------------

func geohashEncode(lon, lat float64) uint64 {
	cells := float64(uint64(1) << geoStep)
	latBits := uint64((lat - geoLatMin) / (geoLatMax - geoLatMin) * cells)
	lonBits := uint64((lon - geoLonMin) / (geoLonMax - geoLonMin) * cells)
	maxBits := uint64(1)<<geoStep - 1
	latBits = min(latBits, maxBits)
	lonBits = min(lonBits, maxBits)

	var hash uint64
	for i := 0; i < geoStep; i++ {
		hash |= (latBits >> i & 1) << (2 * i)
		hash |= (lonBits >> i & 1) << (2*i + 1)
	}
	return hash
}

// geohashDecode returns the center of the cell described by hash.
func geohashDecode(hash uint64) reply.GeoCoordinate {
	var latBits, lonBits uint64
	for i := 0; i < geoStep; i++ {
		latBits |= (hash >> (2 * i) & 1) << i
		lonBits |= (hash >> (2*i + 1) & 1) << i
	}
	cells := float64(uint64(1) << geoStep)
	latScale := geoLatMax - geoLatMin
	lonScale := geoLonMax - geoLonMin

	lat := geoLatMin + (float64(latBits)+0.5)/cells*latScale
	lon := geoLonMin + (float64(lonBits)+0.5)/cells*lonScale
	return reply.GeoCoordinate{
		Longitude: math.Max(geoLonMin, math.Min(geoLonMax, lon)),
		Latitude:  math.Max(geoLatMin, math.Min(geoLatMax, lat)),
	}
}

// geoDistance is the haversine distance in meters.
func geoDistance(a, b reply.GeoCoordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	u := math.Sin((lat2 - lat1) / 2)
	v := math.Sin((b.Longitude - a.Longitude) * math.Pi / 180 / 2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(u*u+math.Cos(lat1)*math.Cos(lat2)*v*v))
}
