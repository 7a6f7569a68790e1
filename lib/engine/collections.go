package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/ValentinKolb/kvql/lib/reply"
)

// --------------------------------------------------------------------------
// Hashes
// --------------------------------------------------------------------------

// HSet sets field/value pairs and returns the number of new fields.
func (e *Engine) HSet(key string, pairs ...string) (int64, error) {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return 0, fmt.Errorf("ERR wrong number of arguments for 'hset' command")
	}
	var added int64
	err := e.update(key, KindHash, true, func(obj *object) error {
		for i := 0; i < len(pairs); i += 2 {
			if _, ok := obj.hash[pairs[i]]; !ok {
				added++
			}
			obj.hash[pairs[i]] = pairs[i+1]
		}
		return nil
	})
	return added, err
}

// HGet returns a single field of a hash.
func (e *Engine) HGet(key, field string) (string, bool, error) {
	var (
		value string
		found bool
	)
	_, err := e.view(key, KindHash, func(obj *object) error {
		value, found = obj.hash[field]
		return nil
	})
	return value, found, err
}

// HGetAll returns a copy of the hash (empty if the key does not exist).
func (e *Engine) HGetAll(key string) (map[string]string, error) {
	fields := make(map[string]string)
	_, err := e.view(key, KindHash, func(obj *object) error {
		for k, v := range obj.hash {
			fields[k] = v
		}
		return nil
	})
	return fields, err
}

// HScan returns one page of hash entries ordered by field.
func (e *Engine) HScan(key string, cursor uint64, match string, count int) (reply.ScanResult[reply.HashEntry], error) {
	var entries []reply.HashEntry
	_, err := e.view(key, KindHash, func(obj *object) error {
		entries = make([]reply.HashEntry, 0, len(obj.hash))
		for k, v := range obj.hash {
			entries = append(entries, reply.HashEntry{Field: k, Value: v})
		}
		return nil
	})
	if err != nil {
		return reply.ScanResult[reply.HashEntry]{}, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Field < entries[j].Field })
	return scanPage(entries, cursor, match, count, func(h reply.HashEntry) string { return h.Field }), nil
}

// --------------------------------------------------------------------------
// Lists
// --------------------------------------------------------------------------

// LPush prepends the values (the last value ends up first) and returns the new length.
func (e *Engine) LPush(key string, values ...string) (int64, error) {
	var length int64
	err := e.update(key, KindList, true, func(obj *object) error {
		head := make([]string, 0, len(values)+len(obj.list))
		for i := len(values) - 1; i >= 0; i-- {
			head = append(head, values[i])
		}
		obj.list = append(head, obj.list...)
		length = int64(len(obj.list))
		return nil
	})
	return length, err
}

// RPush appends the values and returns the new length.
func (e *Engine) RPush(key string, values ...string) (int64, error) {
	var length int64
	err := e.update(key, KindList, true, func(obj *object) error {
		obj.list = append(obj.list, values...)
		length = int64(len(obj.list))
		return nil
	})
	return length, err
}

// LRange returns the elements between start and stop (inclusive, negative from the end).
func (e *Engine) LRange(key string, start, stop int64) ([]string, error) {
	values := make([]string, 0)
	_, err := e.view(key, KindList, func(obj *object) error {
		from, to := normalizeRange(start, stop, len(obj.list))
		values = append(values, obj.list[from:to]...)
		return nil
	})
	return values, err
}

// BLPop pops the head of the first non-empty list. It never blocks; if all
// lists are empty it returns nil.
func (e *Engine) BLPop(keys ...string) (*reply.KeyedListElement, error) {
	for _, key := range keys {
		var popped *reply.KeyedListElement
		err := e.update(key, KindList, false, func(obj *object) error {
			popped = &reply.KeyedListElement{Key: key, Element: obj.list[0]}
			obj.list = obj.list[1:]
			return nil
		})
		if err != nil {
			return nil, err
		}
		if popped != nil {
			return popped, nil
		}
	}
	return nil, nil
}

// --------------------------------------------------------------------------
// Sorted Sets
// --------------------------------------------------------------------------

// ZAdd adds or updates members and returns the number of new members.
func (e *Engine) ZAdd(key string, members ...reply.Tuple) (int64, error) {
	var added int64
	err := e.update(key, KindZSet, true, func(obj *object) error {
		for _, m := range members {
			if math.IsNaN(m.Score) {
				return fmt.Errorf("ERR resulting score is not a number (NaN)")
			}
			if _, ok := obj.zset[m.Element]; !ok {
				added++
			}
			obj.zset[m.Element] = m.Score
		}
		return nil
	})
	return added, err
}

// ZRange returns members by rank (ascending score, ties by member).
func (e *Engine) ZRange(key string, start, stop int64) ([]reply.Tuple, error) {
	tuples := make([]reply.Tuple, 0)
	_, err := e.view(key, KindZSet, func(obj *object) error {
		sorted := sortedTuples(obj.zset)
		from, to := normalizeRange(start, stop, len(sorted))
		tuples = append(tuples, sorted[from:to]...)
		return nil
	})
	return tuples, err
}

// ZScan returns one page of members in rank order.
func (e *Engine) ZScan(key string, cursor uint64, match string, count int) (reply.ScanResult[reply.Tuple], error) {
	var tuples []reply.Tuple
	_, err := e.view(key, KindZSet, func(obj *object) error {
		tuples = sortedTuples(obj.zset)
		return nil
	})
	if err != nil {
		return reply.ScanResult[reply.Tuple]{}, err
	}
	return scanPage(tuples, cursor, match, count, func(t reply.Tuple) string { return t.Element }), nil
}

// ZPopMax removes and returns up to count members with the highest scores.
func (e *Engine) ZPopMax(key string, count int) ([]reply.Tuple, error) {
	popped := make([]reply.Tuple, 0)
	err := e.update(key, KindZSet, false, func(obj *object) error {
		sorted := sortedTuples(obj.zset)
		for i := len(sorted) - 1; i >= 0 && len(popped) < count; i-- {
			popped = append(popped, sorted[i])
			delete(obj.zset, sorted[i].Element)
		}
		return nil
	})
	return popped, err
}

// BZPopMax pops the highest scored member of the first non-empty sorted set.
// It never blocks; if all sets are empty it returns nil.
func (e *Engine) BZPopMax(keys ...string) (*reply.KeyedZSetElement, error) {
	for _, key := range keys {
		popped, err := e.ZPopMax(key, 1)
		if err != nil {
			return nil, err
		}
		if len(popped) > 0 {
			return &reply.KeyedZSetElement{Key: key, Element: popped[0].Element, Score: popped[0].Score}, nil
		}
	}
	return nil, nil
}

// sortedTuples orders a sorted set by score, then by member.
func sortedTuples(zset map[string]float64) []reply.Tuple {
	tuples := make([]reply.Tuple, 0, len(zset))
	for member, score := range zset {
		tuples = append(tuples, reply.Tuple{Element: member, Score: score})
	}
	sort.Slice(tuples, func(i, j int) bool {
		if tuples[i].Score != tuples[j].Score {
			return tuples[i].Score < tuples[j].Score
		}
		return tuples[i].Element < tuples[j].Element
	})
	return tuples
}
