package engine

import (
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ValentinKolb/kvql/lib/reply"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("engine")

var (
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	ErrNoSuchKey = errors.New("ERR no such key")
)

// --------------------------------------------------------------------------
// Object Kinds
// --------------------------------------------------------------------------

// Kind is the data type of a stored value.
type Kind uint8

const (
	KindString Kind = iota // A plain string value.
	KindHash               // A field/value map.
	KindList               // An ordered list of strings.
	KindZSet               // A sorted set (also used for geo sets).
	KindStream             // An append only stream.
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindHash:
		return "hash"
	case KindList:
		return "list"
	case KindZSet:
		return "zset"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// object is a single value in the keyspace. The kind never changes after
// creation, all other fields are guarded by mu.
type object struct {
	mu     sync.RWMutex
	kind   Kind
	str    string
	hash   map[string]string
	list   []string
	zset   map[string]float64
	stream *stream
}

func newObject(kind Kind) *object {
	obj := &object{kind: kind}
	switch kind {
	case KindHash:
		obj.hash = make(map[string]string)
	case KindZSet:
		obj.zset = make(map[string]float64)
	case KindStream:
		obj.stream = &stream{}
	}
	return obj
}

// empty reports whether the object should be removed from the keyspace.
// Streams are kept even without entries.
func (o *object) empty() bool {
	switch o.kind {
	case KindHash:
		return len(o.hash) == 0
	case KindList:
		return len(o.list) == 0
	case KindZSet:
		return len(o.zset) == 0
	default:
		return false
	}
}

// --------------------------------------------------------------------------
// Engine
// --------------------------------------------------------------------------

// Engine is an in-memory store answering with the native reply shapes of
// package reply. All methods are safe for concurrent use.
type Engine struct {
	data   *xsync.MapOf[string, *object]
	config *xsync.MapOf[string, string]
	users  *xsync.MapOf[string, *user]

	modules []reply.Module
	now     func() time.Time

	aclMu  sync.Mutex
	aclLog []aclLogRecord
}

// Option configures an Engine.
type Option func(e *Engine)

// WithClock replaces the wall clock (used for stream IDs and ACL log ages).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithModules sets the modules reported by MODULE LIST.
func WithModules(modules ...reply.Module) Option {
	return func(e *Engine) { e.modules = append([]reply.Module(nil), modules...) }
}

// WithConfig overrides or adds configuration parameters.
func WithConfig(params map[string]string) Option {
	return func(e *Engine) {
		for k, v := range params {
			e.config.Store(k, v)
		}
	}
}

// defaultConfig are the parameters known to CONFIG GET without any override.
var defaultConfig = map[string]string{
	"appendonly":       "no",
	"databases":        "1",
	"maxclients":       "10000",
	"maxmemory":        "0",
	"maxmemory-policy": "noeviction",
	"port":             "6379",
	"save":             "",
	"timeout":          "0",
}

// New creates an empty engine with a "default" user that needs no password.
func New(opts ...Option) *Engine {
	e := &Engine{
		data:   xsync.NewMapOf[string, *object](),
		config: xsync.NewMapOf[string, string](),
		users:  xsync.NewMapOf[string, *user](),
		now:    time.Now,
	}
	for k, v := range defaultConfig {
		e.config.Store(k, v)
	}
	e.users.Store(defaultUser, newDefaultUser())

	for _, opt := range opts {
		opt(e)
	}

	Logger.Debugf("created in-memory engine with %d modules", len(e.modules))
	return e
}

// update runs fn on the object under key while holding the key's bucket lock.
// A missing object is created with the given kind if create is set. Objects
// left empty by fn are removed.
func (e *Engine) update(key string, kind Kind, create bool, fn func(obj *object) error) error {
	var err error
	e.data.Compute(key, func(obj *object, loaded bool) (*object, bool) {
		if !loaded {
			if !create {
				return nil, true
			}
			obj = newObject(kind)
		} else if obj.kind != kind {
			err = ErrWrongType
			return obj, false
		}

		obj.mu.Lock()
		err = fn(obj)
		empty := obj.empty()
		obj.mu.Unlock()

		return obj, empty
	})
	return err
}

// view runs fn on the object under key with a read lock.
// It reports whether the key exists.
func (e *Engine) view(key string, kind Kind, fn func(obj *object) error) (bool, error) {
	obj, ok := e.data.Load(key)
	if !ok {
		return false, nil
	}
	if obj.kind != kind {
		return true, ErrWrongType
	}
	obj.mu.RLock()
	defer obj.mu.RUnlock()
	return true, fn(obj)
}

// --------------------------------------------------------------------------
// Keyspace
// --------------------------------------------------------------------------

func (e *Engine) Ping(message string) string {
	if message == "" {
		return "PONG"
	}
	return message
}

func (e *Engine) Echo(message string) string {
	return message
}

// DBSize returns the number of keys.
func (e *Engine) DBSize() int64 {
	return int64(e.data.Size())
}

// FlushAll removes every key.
func (e *Engine) FlushAll() {
	e.data.Clear()
}

// Type returns the kind of the value stored under key or "none".
func (e *Engine) Type(key string) string {
	if obj, ok := e.data.Load(key); ok {
		return obj.kind.String()
	}
	return "none"
}

// Del removes the keys and returns how many existed.
func (e *Engine) Del(keys ...string) int64 {
	var removed int64
	for _, key := range keys {
		if _, ok := e.data.LoadAndDelete(key); ok {
			removed++
		}
	}
	return removed
}

// Exists counts the given keys that exist (a key given twice counts twice).
func (e *Engine) Exists(keys ...string) int64 {
	var found int64
	for _, key := range keys {
		if _, ok := e.data.Load(key); ok {
			found++
		}
	}
	return found
}

// Keys returns all keys matching the glob pattern, sorted.
func (e *Engine) Keys(pattern string) []string {
	keys := make([]string, 0)
	e.data.Range(func(key string, _ *object) bool {
		if Match(pattern, key) {
			keys = append(keys, key)
		}
		return true
	})
	sort.Strings(keys)
	return keys
}

// Scan returns one page of keys. The cursor is the offset into the sorted
// keyspace, so concurrent writes may cause keys to be skipped or repeated.
func (e *Engine) Scan(cursor uint64, match string, count int) reply.ScanResult[string] {
	return scanPage(e.Keys("*"), cursor, match, count, Identity)
}

// --------------------------------------------------------------------------
// Strings
// --------------------------------------------------------------------------

// Get returns the string stored under key.
func (e *Engine) Get(key string) (string, bool, error) {
	var value string
	found, err := e.view(key, KindString, func(obj *object) error {
		value = obj.str
		return nil
	})
	return value, found && err == nil, err
}

// Set stores a string, replacing any existing value regardless of its kind.
func (e *Engine) Set(key, value string) {
	obj := newObject(KindString)
	obj.str = value
	e.data.Store(key, obj)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// Identity returns the value itself, used as the match key of string pages.
func Identity(s string) string {
	return s
}

// scanPage cuts one page out of items (already in a stable order).
func scanPage[T any](items []T, cursor uint64, match string, count int, name func(T) string) reply.ScanResult[T] {
	if count <= 0 {
		count = 10
	}
	results := make([]T, 0, min(count, len(items)))

	pos := cursor
	for ; pos < uint64(len(items)) && len(results) < count; pos++ {
		if match == "" || Match(match, name(items[pos])) {
			results = append(results, items[pos])
		}
	}

	next := reply.ScanStartCursor
	if pos < uint64(len(items)) {
		next = strconv.FormatUint(pos, 10)
	}
	return reply.ScanResult[T]{Cursor: next, Results: results}
}

// normalizeRange maps redis style (possibly negative) inclusive indexes onto
// [from, to) for a sequence of length n.
func normalizeRange(start, stop int64, n int) (int, int) {
	length := int64(n)
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if start > stop || start >= length {
		return 0, 0
	}
	return int(start), int(stop) + 1
}
