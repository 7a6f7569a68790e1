package dispatch

import (
	"fmt"

	"github.com/ValentinKolb/kvql/lib/convert"
	"github.com/ValentinKolb/kvql/lib/engine"
	"github.com/ValentinKolb/kvql/lib/reply"
)

func geoAdd(b Backend, params []string) (any, error) {
	if err := arity(params, 4, -1); err != nil {
		return nil, err
	}
	if err := pairs(params[1:], 3); err != nil {
		return nil, err
	}
	members := make([]engine.GeoMember, 0, len(params)/3)
	for i := 1; i < len(params); i += 3 {
		lon, err := parseFloat(params[i])
		if err != nil {
			return nil, err
		}
		lat, err := parseFloat(params[i+1])
		if err != nil {
			return nil, err
		}
		members = append(members, engine.GeoMember{Longitude: lon, Latitude: lat, Member: params[i+2]})
	}
	return b.GeoAdd(params[0], members...)
}

func geoPos(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 1, -1); err != nil {
		return nil, convert.KeyGeoCoordinate, err
	}
	positions, err := b.GeoPos(params[0], params[1:]...)
	return positions, convert.KeyGeoCoordinate, err
}

func geoDist(b Backend, params []string) (any, error) {
	if err := arity(params, 3, 4); err != nil {
		return nil, err
	}
	unit := "m"
	if len(params) == 4 {
		unit = params[3]
	}
	dist, found, err := b.GeoDist(params[0], params[1], params[2], unit)
	if err != nil || !found {
		return nil, err
	}
	return dist, nil
}

// geoRadiusOptions parses WITHCOORD, WITHDIST, WITHHASH, COUNT n, ASC and DESC.
func geoRadiusOptions(params []string) (engine.GeoRadiusOptions, error) {
	var opts engine.GeoRadiusOptions
	for i := 0; i < len(params); i++ {
		switch {
		case is(params[i], "WITHCOORD"):
			opts.WithCoord = true
		case is(params[i], "WITHDIST"):
			opts.WithDist = true
		case is(params[i], "WITHHASH"):
			opts.WithHash = true
		case is(params[i], "ASC"):
			opts.Sort = engine.GeoSortAsc
		case is(params[i], "DESC"):
			opts.Sort = engine.GeoSortDesc
		case is(params[i], "COUNT") && i+1 < len(params):
			count, err := parseCount(params[i+1])
			if err != nil {
				return opts, err
			}
			if count == 0 {
				return opts, fmt.Errorf("%w: COUNT must be > 0", ErrSyntax)
			}
			opts.Count = count
			i++
		default:
			return opts, fmt.Errorf("%w: unknown option %s", ErrSyntax, params[i])
		}
	}
	return opts, nil
}

func geoRadius(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 5, -1); err != nil {
		return nil, convert.KeyGeoRadius, err
	}
	lon, err := parseFloat(params[1])
	if err != nil {
		return nil, convert.KeyGeoRadius, err
	}
	lat, err := parseFloat(params[2])
	if err != nil {
		return nil, convert.KeyGeoRadius, err
	}
	radius, err := parseFloat(params[3])
	if err != nil {
		return nil, convert.KeyGeoRadius, err
	}
	opts, err := geoRadiusOptions(params[5:])
	if err != nil {
		return nil, convert.KeyGeoRadius, err
	}
	center := reply.GeoCoordinate{Longitude: lon, Latitude: lat}
	results, err := b.GeoRadius(params[0], center, radius, params[4], opts)
	return results, convert.KeyGeoRadius, err
}

func geoRadiusByMember(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 4, -1); err != nil {
		return nil, convert.KeyGeoRadius, err
	}
	radius, err := parseFloat(params[2])
	if err != nil {
		return nil, convert.KeyGeoRadius, err
	}
	opts, err := geoRadiusOptions(params[4:])
	if err != nil {
		return nil, convert.KeyGeoRadius, err
	}
	results, err := b.GeoRadiusByMember(params[0], params[1], radius, params[3], opts)
	return results, convert.KeyGeoRadius, err
}
