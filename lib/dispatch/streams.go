package dispatch

import (
	"fmt"

	"github.com/ValentinKolb/kvql/lib/convert"
)

func xAdd(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 4, -1); err != nil {
		return nil, convert.KeyStreamEntryID, err
	}
	if err := pairs(params[2:], 2); err != nil {
		return nil, convert.KeyStreamEntryID, err
	}
	id, err := b.XAdd(params[0], params[1], params[2:]...)
	return id, convert.KeyStreamEntryID, err
}

func xLen(b Backend, params []string) (any, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, err
	}
	return b.XLen(params[0])
}

func xRange(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 3, 5); err != nil {
		return nil, convert.KeyStreamEntry, err
	}
	count, err := countOption(params[3:])
	if err != nil {
		return nil, convert.KeyStreamEntry, err
	}
	entries, err := b.XRange(params[0], params[1], params[2], count)
	return entries, convert.KeyStreamEntry, err
}

func xRevRange(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 3, 5); err != nil {
		return nil, convert.KeyStreamEntry, err
	}
	count, err := countOption(params[3:])
	if err != nil {
		return nil, convert.KeyStreamEntry, err
	}
	entries, err := b.XRevRange(params[0], params[1], params[2], count)
	return entries, convert.KeyStreamEntry, err
}

// streamsClause splits "[COUNT n] STREAMS key [key ...] id [id ...]".
func streamsClause(params []string) (count int, keys, ids []string, err error) {
	i := 0
	for ; i < len(params) && !is(params[i], "STREAMS"); i++ {
		switch {
		case is(params[i], "COUNT") && i+1 < len(params):
			if count, err = parseCount(params[i+1]); err != nil {
				return 0, nil, nil, err
			}
			i++
		case is(params[i], "BLOCK") && i+1 < len(params):
			if _, err = parseCount(params[i+1]); err != nil {
				return 0, nil, nil, err
			}
			i++
		case is(params[i], "NOACK"):
		default:
			return 0, nil, nil, fmt.Errorf("%w: unknown option %s", ErrSyntax, params[i])
		}
	}
	rest := params[min(i+1, len(params)):]
	if i == len(params) || len(rest) == 0 || len(rest)%2 != 0 {
		return 0, nil, nil, fmt.Errorf("%w: unbalanced list of streams, for each stream key an ID must be specified", ErrSyntax)
	}
	half := len(rest) / 2
	return count, rest[:half], rest[half:], nil
}

func xRead(b Backend, params []string) (any, convert.Key, error) {
	count, keys, ids, err := streamsClause(params)
	if err != nil {
		return nil, convert.KeyStreamRead, err
	}
	reads, err := b.XRead(count, keys, ids)
	return reads, convert.KeyStreamRead, err
}

// xReadGroup only supports the ">" id (never delivered entries).
func xReadGroup(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 6, -1); err != nil {
		return nil, convert.KeyStreamRead, err
	}
	if !is(params[0], "GROUP") {
		return nil, convert.KeyStreamRead, fmt.Errorf("%w: expected GROUP <group> <consumer>", ErrSyntax)
	}
	count, keys, ids, err := streamsClause(params[3:])
	if err != nil {
		return nil, convert.KeyStreamRead, err
	}
	for _, id := range ids {
		if id != ">" {
			return nil, convert.KeyStreamRead, fmt.Errorf("%w: only the > id is supported", ErrSyntax)
		}
	}
	reads, err := b.XReadGroup(params[1], params[2], count, keys)
	return reads, convert.KeyStreamRead, err
}

func xAck(b Backend, params []string) (any, error) {
	if err := arity(params, 3, -1); err != nil {
		return nil, err
	}
	return b.XAck(params[0], params[1], params[2:]...)
}

func xGroupCreate(b Backend, params []string) (any, error) {
	if err := arity(params, 3, 4); err != nil {
		return nil, err
	}
	mkStream := len(params) == 4
	if mkStream && !is(params[3], "MKSTREAM") {
		return nil, fmt.Errorf("%w: unknown option %s", ErrSyntax, params[3])
	}
	if err := b.XGroupCreate(params[0], params[1], params[2], mkStream); err != nil {
		return nil, err
	}
	return replyOK, nil
}

func xGroupCreateConsumer(b Backend, params []string) (any, error) {
	if err := arity(params, 3, 3); err != nil {
		return nil, err
	}
	created, err := b.XGroupCreateConsumer(params[0], params[1], params[2])
	if err != nil {
		return nil, err
	}
	if created {
		return int64(1), nil
	}
	return int64(0), nil
}

func xInfoStream(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, convert.KeyStreamInfo, err
	}
	info, err := b.XInfoStream(params[0])
	return info, convert.KeyStreamInfo, err
}

func xInfoGroups(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, convert.KeyStreamGroupInfo, err
	}
	groups, err := b.XInfoGroups(params[0])
	return groups, convert.KeyStreamGroupInfo, err
}

func xInfoConsumers(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 2, 2); err != nil {
		return nil, convert.KeyStreamConsumersInfo, err
	}
	consumers, err := b.XInfoConsumers(params[0], params[1])
	return consumers, convert.KeyStreamConsumersInfo, err
}
