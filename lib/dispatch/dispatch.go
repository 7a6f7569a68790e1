package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ValentinKolb/kvql/lib/convert"
	"github.com/ValentinKolb/kvql/lib/engine"
	"github.com/ValentinKolb/kvql/lib/query"
	"github.com/ValentinKolb/kvql/lib/reply"
	"github.com/ValentinKolb/kvql/lib/result"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("dispatch")

var (
	// ErrUnsupported is returned for queries that parse but have no route.
	ErrUnsupported = errors.New("unsupported command")
	// ErrSyntax is returned for wrong arity or malformed arguments.
	ErrSyntax = errors.New("syntax error")
)

// --------------------------------------------------------------------------
// Backend
// --------------------------------------------------------------------------

// Backend is the store the executor issues commands against.
// *engine.Engine implements it.
type Backend interface {
	Ping(message string) string
	Echo(message string) string
	DBSize() int64
	FlushAll()
	Type(key string) string
	Del(keys ...string) int64
	Exists(keys ...string) int64
	Keys(pattern string) []string
	Scan(cursor uint64, match string, count int) reply.ScanResult[string]
	Get(key string) (string, bool, error)
	Set(key, value string)

	HSet(key string, pairs ...string) (int64, error)
	HGet(key, field string) (string, bool, error)
	HGetAll(key string) (map[string]string, error)
	HScan(key string, cursor uint64, match string, count int) (reply.ScanResult[reply.HashEntry], error)

	LPush(key string, values ...string) (int64, error)
	RPush(key string, values ...string) (int64, error)
	LRange(key string, start, stop int64) ([]string, error)
	BLPop(keys ...string) (*reply.KeyedListElement, error)

	ZAdd(key string, members ...reply.Tuple) (int64, error)
	ZRange(key string, start, stop int64) ([]reply.Tuple, error)
	ZScan(key string, cursor uint64, match string, count int) (reply.ScanResult[reply.Tuple], error)
	ZPopMax(key string, count int) ([]reply.Tuple, error)
	BZPopMax(keys ...string) (*reply.KeyedZSetElement, error)

	GeoAdd(key string, members ...engine.GeoMember) (int64, error)
	GeoPos(key string, members ...string) ([]*reply.GeoCoordinate, error)
	GeoDist(key, from, to, unit string) (float64, bool, error)
	GeoRadius(key string, center reply.GeoCoordinate, radius float64, unit string, opts engine.GeoRadiusOptions) ([]reply.GeoRadiusResponse, error)
	GeoRadiusByMember(key, member string, radius float64, unit string, opts engine.GeoRadiusOptions) ([]reply.GeoRadiusResponse, error)

	XAdd(key, id string, fields ...string) (reply.StreamEntryID, error)
	XLen(key string) (int64, error)
	XRange(key, start, end string, count int) ([]reply.StreamEntry, error)
	XRevRange(key, end, start string, count int) ([]reply.StreamEntry, error)
	XRead(count int, keys, ids []string) ([]reply.StreamRead, error)
	XGroupCreate(key, name, id string, mkStream bool) error
	XGroupCreateConsumer(key, groupName, consumerName string) (bool, error)
	XReadGroup(groupName, consumerName string, count int, keys []string) ([]reply.StreamRead, error)
	XAck(key, groupName string, ids ...string) (int64, error)
	XInfoStream(key string) (reply.StreamInfo, error)
	XInfoGroups(key string) ([]reply.StreamGroupInfo, error)
	XInfoConsumers(key, groupName string) ([]reply.StreamConsumersInfo, error)

	ConfigGet(pattern string) map[string]string
	ConfigSet(param, value string) error
	ModuleList() []reply.Module
	ACLSetUser(name string, rules ...string) error
	ACLDelUser(names ...string) (int64, error)
	ACLGetUser(name string) *reply.AccessControlUser
	ACLUsers() []string
	ACLWhoAmI() string
	ACLLog(count int) []reply.AccessControlLogEntry
	ACLLogReset()
	Auth(username, password string) error
}

var _ Backend = (*engine.Engine)(nil)

// --------------------------------------------------------------------------
// Executor
// --------------------------------------------------------------------------

// Executor parses raw command lines, routes them to the backend and wraps
// the converted reply in a result. It is safe for concurrent use as long as
// the backend is.
type Executor struct {
	normalizer *query.Normalizer
	registry   *convert.Registry
	backend    Backend
	routes     map[routeKey]handler
}

// Option configures an Executor.
type Option func(x *Executor)

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *query.Normalizer) Option {
	return func(x *Executor) { x.normalizer = n }
}

// WithRegistry replaces the default converter registry.
func WithRegistry(r *convert.Registry) Option {
	return func(x *Executor) { x.registry = r }
}

// NewExecutor creates an executor for the given backend.
func NewExecutor(backend Backend, opts ...Option) *Executor {
	x := &Executor{
		normalizer: query.NewNormalizer(query.DefaultVocabulary()),
		registry:   convert.DefaultRegistry(),
		backend:    backend,
		routes:     routes,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Execute parses raw and dispatches the resulting query.
// Parse failures are returned as *query.Error.
func (x *Executor) Execute(ctx context.Context, raw string) (result.Result, error) {
	q, err := x.normalizer.Parse(raw)
	if err != nil {
		metrics.GetOrCreateCounter(`kvql_query_errors_total{reason="parse"}`).Inc()
		return result.Result{}, err
	}
	return x.Dispatch(ctx, q)
}

// Dispatch runs an already parsed query.
func (x *Executor) Dispatch(ctx context.Context, q query.Query) (result.Result, error) {
	if err := ctx.Err(); err != nil {
		return result.Result{}, err
	}

	name := string(q.Verb)
	if q.HasSubVerb() {
		name += " " + string(q.SubVerb)
	}

	h, ok := x.routes[routeKey{verb: q.Verb, subVerb: q.SubVerb}]
	if !ok {
		metrics.GetOrCreateCounter(`kvql_query_errors_total{reason="unsupported"}`).Inc()
		return result.Result{}, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}

	start := time.Now()
	defer metrics.GetOrCreateHistogram(fmt.Sprintf(`kvql_query_duration_seconds{command=%q}`, name)).UpdateDuration(start)
	metrics.GetOrCreateCounter(fmt.Sprintf(`kvql_queries_total{command=%q}`, name)).Inc()

	native, key, err := h(x.backend, q.Params)
	if err != nil {
		reason := "backend"
		if errors.Is(err, ErrSyntax) {
			reason = "syntax"
		}
		metrics.GetOrCreateCounter(fmt.Sprintf(`kvql_query_errors_total{reason=%q}`, reason)).Inc()
		Logger.Debugf("%s failed: %v", name, err)
		return result.Result{}, err
	}

	canonical, err := x.registry.Convert(native, key)
	if err != nil {
		Logger.Errorf("converting reply of %s with %s: %v", name, key, err)
		return result.Result{}, fmt.Errorf("converting reply of %s: %w", name, err)
	}
	return result.Wrap(q, canonical)
}

// Supported reports whether the executor has a route for the query.
func (x *Executor) Supported(q query.Query) bool {
	_, ok := x.routes[routeKey{verb: q.Verb, subVerb: q.SubVerb}]
	return ok
}
