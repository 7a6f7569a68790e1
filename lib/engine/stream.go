package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ValentinKolb/kvql/lib/reply"
)

var (
	ErrStreamIDTooSmall = errors.New("ERR The ID specified in XADD is equal or smaller than the target stream top item")
	ErrBusyGroup        = errors.New("BUSYGROUP Consumer Group name already exists")
	ErrNoGroup          = errors.New("NOGROUP No such key or consumer group")
)

type stream struct {
	entries []reply.StreamEntry // ordered by ID
	lastID  reply.StreamEntryID
	groups  []*group
}

type group struct {
	name          string
	lastDelivered reply.StreamEntryID
	consumers     []*consumer
	pending       map[reply.StreamEntryID]string // entry -> consumer
}

type consumer struct {
	name     string
	seenTime time.Time
}

func (s *stream) group(name string) *group {
	for _, g := range s.groups {
		if g.name == name {
			return g
		}
	}
	return nil
}

func (g *group) consumer(name string, now time.Time) (*consumer, bool) {
	for _, c := range g.consumers {
		if c.name == name {
			return c, false
		}
	}
	c := &consumer{name: name, seenTime: now}
	g.consumers = append(g.consumers, c)
	return c, true
}

// after returns the entries with an ID strictly greater than id.
func (s *stream) after(id reply.StreamEntryID) []reply.StreamEntry {
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].ID.Compare(id) > 0 })
	return s.entries[i:]
}

func cloneEntry(entry reply.StreamEntry) reply.StreamEntry {
	fields := make(map[string]string, len(entry.Fields))
	for k, v := range entry.Fields {
		fields[k] = v
	}
	return reply.StreamEntry{ID: entry.ID, Fields: fields}
}

func cloneEntries(entries []reply.StreamEntry, count int) []reply.StreamEntry {
	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}
	out := make([]reply.StreamEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, cloneEntry(entry))
	}
	return out
}

// --------------------------------------------------------------------------
// Entries
// --------------------------------------------------------------------------

// XAdd appends an entry. An id of "*" generates one from the clock.
func (e *Engine) XAdd(key, id string, fields ...string) (reply.StreamEntryID, error) {
	if len(fields) == 0 || len(fields)%2 != 0 {
		return reply.StreamEntryID{}, fmt.Errorf("ERR wrong number of arguments for 'xadd' command")
	}
	var explicit *reply.StreamEntryID
	if id != "*" {
		parsed, err := reply.ParseStreamEntryID(id)
		if err != nil {
			return reply.StreamEntryID{}, fmt.Errorf("ERR Invalid stream ID specified as stream command argument")
		}
		explicit = &parsed
	}

	var added reply.StreamEntryID
	err := e.update(key, KindStream, true, func(obj *object) error {
		s := obj.stream
		if explicit != nil {
			if explicit.Compare(s.lastID) <= 0 {
				return ErrStreamIDTooSmall
			}
			added = *explicit
		} else {
			ms := uint64(e.now().UnixMilli())
			if ms > s.lastID.Time {
				added = reply.StreamEntryID{Time: ms}
			} else {
				added = reply.StreamEntryID{Time: s.lastID.Time, Sequence: s.lastID.Sequence + 1}
			}
		}

		entry := reply.StreamEntry{ID: added, Fields: make(map[string]string, len(fields)/2)}
		for i := 0; i < len(fields); i += 2 {
			entry.Fields[fields[i]] = fields[i+1]
		}
		s.entries = append(s.entries, entry)
		s.lastID = added
		return nil
	})
	return added, err
}

// XLen returns the number of entries.
func (e *Engine) XLen(key string) (int64, error) {
	var n int64
	_, err := e.view(key, KindStream, func(obj *object) error {
		n = int64(len(obj.stream.entries))
		return nil
	})
	return n, err
}

// XRange returns entries between start and end (inclusive), "-" and "+"
// denote the smallest and largest possible IDs.
func (e *Engine) XRange(key, start, end string, count int) ([]reply.StreamEntry, error) {
	from, to, err := parseStreamRange(start, end)
	if err != nil {
		return nil, err
	}
	entries := make([]reply.StreamEntry, 0)
	_, err = e.view(key, KindStream, func(obj *object) error {
		for _, entry := range obj.stream.entries {
			if entry.ID.Compare(from) >= 0 && entry.ID.Compare(to) <= 0 {
				entries = append(entries, entry)
			}
		}
		entries = cloneEntries(entries, count)
		return nil
	})
	return entries, err
}

// XRevRange is XRange in descending order, end comes first.
func (e *Engine) XRevRange(key, end, start string, count int) ([]reply.StreamEntry, error) {
	entries, err := e.XRange(key, start, end, 0)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}
	return entries, nil
}

// XRead returns for every key the entries after the matching id. An id of
// "$" means the last entry at call time. Keys without new entries are omitted.
func (e *Engine) XRead(count int, keys, ids []string) ([]reply.StreamRead, error) {
	if len(keys) != len(ids) {
		return nil, fmt.Errorf("ERR Unbalanced 'xread' list of streams: for each stream key an ID or '$' must be specified")
	}
	reads := make([]reply.StreamRead, 0)
	for i, key := range keys {
		var entries []reply.StreamEntry
		_, err := e.view(key, KindStream, func(obj *object) error {
			from := obj.stream.lastID
			if ids[i] != "$" {
				parsed, err := reply.ParseStreamEntryID(ids[i])
				if err != nil {
					return fmt.Errorf("ERR Invalid stream ID specified as stream command argument")
				}
				from = parsed
			}
			entries = cloneEntries(obj.stream.after(from), count)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			reads = append(reads, reply.StreamRead{Key: key, Entries: entries})
		}
	}
	return reads, nil
}

// --------------------------------------------------------------------------
// Consumer Groups
// --------------------------------------------------------------------------

// XGroupCreate creates a consumer group starting after id ("$" for the last entry).
func (e *Engine) XGroupCreate(key, name, id string, mkStream bool) error {
	found := false
	err := e.update(key, KindStream, mkStream, func(obj *object) error {
		found = true
		s := obj.stream
		if s.group(name) != nil {
			return ErrBusyGroup
		}
		start := s.lastID
		if id != "$" {
			parsed, err := reply.ParseStreamEntryID(id)
			if err != nil {
				return fmt.Errorf("ERR Invalid stream ID specified as stream command argument")
			}
			start = parsed
		}
		s.groups = append(s.groups, &group{name: name, lastDelivered: start, pending: make(map[reply.StreamEntryID]string)})
		return nil
	})
	if err == nil && !found {
		return fmt.Errorf("ERR The XGROUP subcommand requires the key to exist")
	}
	return err
}

// XGroupCreateConsumer adds a consumer and reports whether it was new.
func (e *Engine) XGroupCreateConsumer(key, groupName, consumerName string) (bool, error) {
	created := false
	err := e.withGroup(key, groupName, func(_ *stream, g *group) error {
		_, created = g.consumer(consumerName, e.now())
		return nil
	})
	return created, err
}

// XReadGroup delivers entries never delivered to the group before and marks
// them as pending for the consumer.
func (e *Engine) XReadGroup(groupName, consumerName string, count int, keys []string) ([]reply.StreamRead, error) {
	reads := make([]reply.StreamRead, 0)
	for _, key := range keys {
		var entries []reply.StreamEntry
		err := e.withGroup(key, groupName, func(s *stream, g *group) error {
			c, _ := g.consumer(consumerName, e.now())
			c.seenTime = e.now()
			entries = cloneEntries(s.after(g.lastDelivered), count)
			for _, entry := range entries {
				g.pending[entry.ID] = consumerName
				g.lastDelivered = entry.ID
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			reads = append(reads, reply.StreamRead{Key: key, Entries: entries})
		}
	}
	return reads, nil
}

// XAck removes entries from the pending list of a group.
func (e *Engine) XAck(key, groupName string, ids ...string) (int64, error) {
	var acked int64
	err := e.withGroup(key, groupName, func(_ *stream, g *group) error {
		for _, raw := range ids {
			id, err := reply.ParseStreamEntryID(raw)
			if err != nil {
				return fmt.Errorf("ERR Invalid stream ID specified as stream command argument")
			}
			if _, ok := g.pending[id]; ok {
				delete(g.pending, id)
				acked++
			}
		}
		return nil
	})
	return acked, err
}

func (e *Engine) withGroup(key, groupName string, fn func(s *stream, g *group) error) error {
	found := false
	err := e.update(key, KindStream, false, func(obj *object) error {
		g := obj.stream.group(groupName)
		if g == nil {
			return nil
		}
		found = true
		return fn(obj.stream, g)
	})
	if err == nil && !found {
		return ErrNoGroup
	}
	return err
}

// --------------------------------------------------------------------------
// Introspection
// --------------------------------------------------------------------------

// XInfoStream describes the stream under key.
func (e *Engine) XInfoStream(key string) (reply.StreamInfo, error) {
	var info reply.StreamInfo
	found, err := e.view(key, KindStream, func(obj *object) error {
		s := obj.stream
		info.Length = int64(len(s.entries))
		info.Groups = int64(len(s.groups))
		info.LastGeneratedID = s.lastID

		// one node per distinct millisecond plus the root
		var prev uint64
		for i, entry := range s.entries {
			if i == 0 || entry.ID.Time != prev {
				info.RadixTreeKeys++
			}
			prev = entry.ID.Time
		}
		if info.RadixTreeKeys > 0 {
			info.RadixTreeNodes = info.RadixTreeKeys + 1
			first, last := cloneEntry(s.entries[0]), cloneEntry(s.entries[len(s.entries)-1])
			info.FirstEntry, info.LastEntry = &first, &last
		}
		return nil
	})
	if err == nil && !found {
		return info, ErrNoSuchKey
	}
	return info, err
}

// XInfoGroups lists the consumer groups of a stream.
func (e *Engine) XInfoGroups(key string) ([]reply.StreamGroupInfo, error) {
	groups := make([]reply.StreamGroupInfo, 0)
	found, err := e.view(key, KindStream, func(obj *object) error {
		for _, g := range obj.stream.groups {
			groups = append(groups, reply.StreamGroupInfo{
				Name:            g.name,
				Consumers:       int64(len(g.consumers)),
				Pending:         int64(len(g.pending)),
				LastDeliveredID: g.lastDelivered,
			})
		}
		return nil
	})
	if err == nil && !found {
		return nil, ErrNoSuchKey
	}
	return groups, err
}

// XInfoConsumers lists the consumers of a group. Idle is in milliseconds.
func (e *Engine) XInfoConsumers(key, groupName string) ([]reply.StreamConsumersInfo, error) {
	consumers := make([]reply.StreamConsumersInfo, 0)
	now := e.now()
	err := e.withGroup(key, groupName, func(_ *stream, g *group) error {
		pending := make(map[string]int64)
		for _, name := range g.pending {
			pending[name]++
		}
		for _, c := range g.consumers {
			consumers = append(consumers, reply.StreamConsumersInfo{
				Name:    c.name,
				Idle:    now.Sub(c.seenTime).Milliseconds(),
				Pending: pending[c.name],
			})
		}
		return nil
	})
	return consumers, err
}

// parseStreamRange resolves the bounds of XRANGE. An end without a sequence
// covers every sequence of that millisecond.
func parseStreamRange(start, end string) (reply.StreamEntryID, reply.StreamEntryID, error) {
	invalid := fmt.Errorf("ERR Invalid stream ID specified as stream command argument")

	from := reply.StreamEntryID{}
	if start != "-" {
		id, err := reply.ParseStreamEntryID(start)
		if err != nil {
			return from, from, invalid
		}
		from = id
	}

	to := reply.StreamEntryID{Time: math.MaxUint64, Sequence: math.MaxUint64}
	if end != "+" {
		id, err := reply.ParseStreamEntryID(end)
		if err != nil {
			return from, to, invalid
		}
		if !strings.Contains(end, "-") {
			id.Sequence = math.MaxUint64
		}
		to = id
	}
	return from, to, nil
}
