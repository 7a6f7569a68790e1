package dispatch

import (
	"fmt"

	"github.com/ValentinKolb/kvql/lib/convert"
	"github.com/ValentinKolb/kvql/lib/query"
	"github.com/ValentinKolb/kvql/lib/reply"
)

// replyOK is the reply of commands that only acknowledge.
const replyOK = "OK"

type routeKey struct {
	verb    query.Verb
	subVerb query.SubVerb
}

// handler issues one command and returns the native reply together with the
// converter key for it.
type handler func(b Backend, params []string) (any, convert.Key, error)

// plain adapts handlers whose reply is converted with convert.KeyPlain.
func plain(fn func(b Backend, params []string) (any, error)) handler {
	return func(b Backend, params []string) (any, convert.Key, error) {
		v, err := fn(b, params)
		return v, convert.KeyPlain, err
	}
}

// routes is the fixed routing table of every supported command.
var routes = map[routeKey]handler{
	// keyspace
	{verb: query.VerbPing}:     plain(ping),
	{verb: query.VerbEcho}:     plain(echo),
	{verb: query.VerbDBSize}:   plain(dbSize),
	{verb: query.VerbFlushAll}: plain(flushAll),
	{verb: query.VerbType}:     plain(typeOf),
	{verb: query.VerbDel}:      plain(del),
	{verb: query.VerbExists}:   plain(exists),
	{verb: query.VerbKeys}:     plain(keys),
	{verb: query.VerbScan}:     scan,
	{verb: query.VerbGet}:      plain(get),
	{verb: query.VerbSet}:      plain(set),
	{verb: query.VerbAuth}:     plain(auth),

	// hashes
	{verb: query.VerbHSet}:    plain(hSet),
	{verb: query.VerbHGet}:    plain(hGet),
	{verb: query.VerbHGetAll}: plain(hGetAll),
	{verb: query.VerbHScan}:   hScan,

	// lists
	{verb: query.VerbLPush}:  plain(lPush),
	{verb: query.VerbRPush}:  plain(rPush),
	{verb: query.VerbLRange}: plain(lRange),
	{verb: query.VerbBLPop}:  bLPop,

	// sorted sets
	{verb: query.VerbZAdd}:     plain(zAdd),
	{verb: query.VerbZRange}:   zRange,
	{verb: query.VerbZScan}:    zScan,
	{verb: query.VerbZPopMax}:  zPopMax,
	{verb: query.VerbBZPopMax}: bZPopMax,

	// geo
	{verb: query.VerbGeoAdd}:              plain(geoAdd),
	{verb: query.VerbGeoPos}:              geoPos,
	{verb: query.VerbGeoDist}:             plain(geoDist),
	{verb: query.VerbGeoRadius}:           geoRadius,
	{verb: query.VerbGeoRadiusRO}:         geoRadius,
	{verb: query.VerbGeoRadiusByMember}:   geoRadiusByMember,
	{verb: query.VerbGeoRadiusByMemberRO}: geoRadiusByMember,

	// streams
	{verb: query.VerbXAdd}:                                         xAdd,
	{verb: query.VerbXLen}:                                         plain(xLen),
	{verb: query.VerbXRange}:                                       xRange,
	{verb: query.VerbXRevRange}:                                    xRevRange,
	{verb: query.VerbXRead}:                                        xRead,
	{verb: query.VerbXReadGroup}:                                   xReadGroup,
	{verb: query.VerbXAck}:                                         plain(xAck),
	{verb: query.VerbXGroup, subVerb: query.SubVerbCreate}:         plain(xGroupCreate),
	{verb: query.VerbXGroup, subVerb: query.SubVerbCreateConsumer}: plain(xGroupCreateConsumer),
	{verb: query.VerbXInfo, subVerb: query.SubVerbStream}:          xInfoStream,
	{verb: query.VerbXInfo, subVerb: query.SubVerbGroups}:          xInfoGroups,
	{verb: query.VerbXInfo, subVerb: query.SubVerbConsumers}:       xInfoConsumers,

	// server
	{verb: query.VerbConfig, subVerb: query.SubVerbGet}:  plain(configGet),
	{verb: query.VerbConfig, subVerb: query.SubVerbSet}:  plain(configSet),
	{verb: query.VerbModule, subVerb: query.SubVerbList}: moduleList,
	{verb: query.VerbACL, subVerb: query.SubVerbWhoAmI}:  plain(aclWhoAmI),
	{verb: query.VerbACL, subVerb: query.SubVerbUsers}:   plain(aclUsers),
	{verb: query.VerbACL, subVerb: query.SubVerbGetUser}: aclGetUser,
	{verb: query.VerbACL, subVerb: query.SubVerbSetUser}: plain(aclSetUser),
	{verb: query.VerbACL, subVerb: query.SubVerbDelUser}: plain(aclDelUser),
	{verb: query.VerbACL, subVerb: query.SubVerbLog}:     aclLog,
}

// --------------------------------------------------------------------------
// Keyspace
// --------------------------------------------------------------------------

func ping(b Backend, params []string) (any, error) {
	if err := arity(params, 0, 1); err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return b.Ping(""), nil
	}
	return b.Ping(params[0]), nil
}

func echo(b Backend, params []string) (any, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, err
	}
	return b.Echo(params[0]), nil
}

func dbSize(b Backend, params []string) (any, error) {
	if err := arity(params, 0, 0); err != nil {
		return nil, err
	}
	return b.DBSize(), nil
}

func flushAll(b Backend, params []string) (any, error) {
	if err := arity(params, 0, 1); err != nil {
		return nil, err
	}
	b.FlushAll()
	return replyOK, nil
}

func typeOf(b Backend, params []string) (any, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, err
	}
	return b.Type(params[0]), nil
}

func del(b Backend, params []string) (any, error) {
	if err := arity(params, 1, -1); err != nil {
		return nil, err
	}
	return b.Del(params...), nil
}

func exists(b Backend, params []string) (any, error) {
	if err := arity(params, 1, -1); err != nil {
		return nil, err
	}
	return b.Exists(params...), nil
}

func keys(b Backend, params []string) (any, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, err
	}
	return b.Keys(params[0]), nil
}

func scan(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 1, 5); err != nil {
		return nil, convert.KeyStringScan, err
	}
	cursor, err := parseCursor(params[0])
	if err != nil {
		return nil, convert.KeyStringScan, err
	}
	match, count, err := scanOptions(params[1:])
	if err != nil {
		return nil, convert.KeyStringScan, err
	}
	return b.Scan(cursor, match, count), convert.KeyStringScan, nil
}

func get(b Backend, params []string) (any, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, err
	}
	value, found, err := b.Get(params[0])
	if err != nil || !found {
		return nil, err
	}
	return value, nil
}

func set(b Backend, params []string) (any, error) {
	if err := arity(params, 2, 2); err != nil {
		return nil, err
	}
	b.Set(params[0], params[1])
	return replyOK, nil
}

func auth(b Backend, params []string) (any, error) {
	if err := arity(params, 1, 2); err != nil {
		return nil, err
	}
	username, password := "", params[0]
	if len(params) == 2 {
		username, password = params[0], params[1]
	}
	if err := b.Auth(username, password); err != nil {
		return nil, err
	}
	return replyOK, nil
}

// --------------------------------------------------------------------------
// Hashes
// --------------------------------------------------------------------------

func hSet(b Backend, params []string) (any, error) {
	if err := arity(params, 3, -1); err != nil {
		return nil, err
	}
	if err := pairs(params[1:], 2); err != nil {
		return nil, err
	}
	return b.HSet(params[0], params[1:]...)
}

func hGet(b Backend, params []string) (any, error) {
	if err := arity(params, 2, 2); err != nil {
		return nil, err
	}
	value, found, err := b.HGet(params[0], params[1])
	if err != nil || !found {
		return nil, err
	}
	return value, nil
}

func hGetAll(b Backend, params []string) (any, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, err
	}
	return b.HGetAll(params[0])
}

func hScan(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 2, 6); err != nil {
		return nil, convert.KeyHashScan, err
	}
	cursor, err := parseCursor(params[1])
	if err != nil {
		return nil, convert.KeyHashScan, err
	}
	match, count, err := scanOptions(params[2:])
	if err != nil {
		return nil, convert.KeyHashScan, err
	}
	page, err := b.HScan(params[0], cursor, match, count)
	return page, convert.KeyHashScan, err
}

// --------------------------------------------------------------------------
// Lists
// --------------------------------------------------------------------------

func lPush(b Backend, params []string) (any, error) {
	if err := arity(params, 2, -1); err != nil {
		return nil, err
	}
	return b.LPush(params[0], params[1:]...)
}

func rPush(b Backend, params []string) (any, error) {
	if err := arity(params, 2, -1); err != nil {
		return nil, err
	}
	return b.RPush(params[0], params[1:]...)
}

func lRange(b Backend, params []string) (any, error) {
	if err := arity(params, 3, 3); err != nil {
		return nil, err
	}
	start, err := parseInt(params[1])
	if err != nil {
		return nil, err
	}
	stop, err := parseInt(params[2])
	if err != nil {
		return nil, err
	}
	return b.LRange(params[0], start, stop)
}

// blockingKeys splits "key [key ...] timeout". The timeout is validated but
// never waited for.
func blockingKeys(params []string) ([]string, error) {
	if err := arity(params, 2, -1); err != nil {
		return nil, err
	}
	if _, err := parseFloat(params[len(params)-1]); err != nil {
		return nil, err
	}
	return params[:len(params)-1], nil
}

func bLPop(b Backend, params []string) (any, convert.Key, error) {
	keys, err := blockingKeys(params)
	if err != nil {
		return nil, convert.KeyKeyedListElement, err
	}
	popped, err := b.BLPop(keys...)
	return popped, convert.KeyKeyedListElement, err
}

// --------------------------------------------------------------------------
// Sorted Sets
// --------------------------------------------------------------------------

func zAdd(b Backend, params []string) (any, error) {
	if err := arity(params, 3, -1); err != nil {
		return nil, err
	}
	if err := pairs(params[1:], 2); err != nil {
		return nil, err
	}
	members := make([]reply.Tuple, 0, len(params)/2)
	for i := 1; i < len(params); i += 2 {
		score, err := parseFloat(params[i])
		if err != nil {
			return nil, err
		}
		members = append(members, reply.Tuple{Element: params[i+1], Score: score})
	}
	return b.ZAdd(params[0], members...)
}

func zRange(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 3, 4); err != nil {
		return nil, convert.KeyPlain, err
	}
	withScores := len(params) == 4
	if withScores && !is(params[3], "WITHSCORES") {
		return nil, convert.KeyPlain, fmt.Errorf("%w: unknown option %s", ErrSyntax, params[3])
	}
	start, err := parseInt(params[1])
	if err != nil {
		return nil, convert.KeyPlain, err
	}
	stop, err := parseInt(params[2])
	if err != nil {
		return nil, convert.KeyPlain, err
	}

	tuples, err := b.ZRange(params[0], start, stop)
	if err != nil {
		return nil, convert.KeyPlain, err
	}
	if withScores {
		return tuples, convert.KeyTuple, nil
	}
	members := make([]string, 0, len(tuples))
	for _, t := range tuples {
		members = append(members, t.Element)
	}
	return members, convert.KeyPlain, nil
}

func zScan(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 2, 6); err != nil {
		return nil, convert.KeyTupleScan, err
	}
	cursor, err := parseCursor(params[1])
	if err != nil {
		return nil, convert.KeyTupleScan, err
	}
	match, count, err := scanOptions(params[2:])
	if err != nil {
		return nil, convert.KeyTupleScan, err
	}
	page, err := b.ZScan(params[0], cursor, match, count)
	return page, convert.KeyTupleScan, err
}

func zPopMax(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 1, 2); err != nil {
		return nil, convert.KeyTuple, err
	}
	count := 1
	if len(params) == 2 {
		var err error
		if count, err = parseCount(params[1]); err != nil {
			return nil, convert.KeyTuple, err
		}
	}
	popped, err := b.ZPopMax(params[0], count)
	return popped, convert.KeyTuple, err
}

func bZPopMax(b Backend, params []string) (any, convert.Key, error) {
	keys, err := blockingKeys(params)
	if err != nil {
		return nil, convert.KeyKeyedZSetElement, err
	}
	popped, err := b.BZPopMax(keys...)
	return popped, convert.KeyKeyedZSetElement, err
}
