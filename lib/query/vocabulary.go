package query

import "sync"

// --------------------------------------------------------------------------
// Verb
// --------------------------------------------------------------------------

// Verb identifies a store command. The value of each constant is the
// canonical (upper-case) protocol token of the command.
type Verb string

func (v Verb) String() string {
	return string(v)
}

const (
	VerbACL                  Verb = "ACL"
	VerbAppend               Verb = "APPEND"
	VerbAsking               Verb = "ASKING"
	VerbAuth                 Verb = "AUTH"
	VerbBgRewriteAOF         Verb = "BGREWRITEAOF"
	VerbBgSave               Verb = "BGSAVE"
	VerbBitCount             Verb = "BITCOUNT"
	VerbBitField             Verb = "BITFIELD"
	VerbBitFieldRO           Verb = "BITFIELD_RO"
	VerbBitOp                Verb = "BITOP"
	VerbBitPos               Verb = "BITPOS"
	VerbBLMove               Verb = "BLMOVE"
	VerbBLPop                Verb = "BLPOP"
	VerbBRPop                Verb = "BRPOP"
	VerbBRPopLPush           Verb = "BRPOPLPUSH"
	VerbBZPopMax             Verb = "BZPOPMAX"
	VerbBZPopMin             Verb = "BZPOPMIN"
	VerbClient               Verb = "CLIENT"
	VerbCluster              Verb = "CLUSTER"
	VerbCommand              Verb = "COMMAND"
	VerbConfig               Verb = "CONFIG"
	VerbCopy                 Verb = "COPY"
	VerbDBSize               Verb = "DBSIZE"
	VerbDebug                Verb = "DEBUG"
	VerbDecr                 Verb = "DECR"
	VerbDecrBy               Verb = "DECRBY"
	VerbDel                  Verb = "DEL"
	VerbDiscard              Verb = "DISCARD"
	VerbDump                 Verb = "DUMP"
	VerbEcho                 Verb = "ECHO"
	VerbEval                 Verb = "EVAL"
	VerbEvalSHA              Verb = "EVALSHA"
	VerbExec                 Verb = "EXEC"
	VerbExists               Verb = "EXISTS"
	VerbExpire               Verb = "EXPIRE"
	VerbExpireAt             Verb = "EXPIREAT"
	VerbFailover             Verb = "FAILOVER"
	VerbFlushAll             Verb = "FLUSHALL"
	VerbFlushDB              Verb = "FLUSHDB"
	VerbGeoAdd               Verb = "GEOADD"
	VerbGeoDist              Verb = "GEODIST"
	VerbGeoHash              Verb = "GEOHASH"
	VerbGeoPos               Verb = "GEOPOS"
	VerbGeoRadius            Verb = "GEORADIUS"
	VerbGeoRadiusRO          Verb = "GEORADIUS_RO"
	VerbGeoRadiusByMember    Verb = "GEORADIUSBYMEMBER"
	VerbGeoRadiusByMemberRO  Verb = "GEORADIUSBYMEMBER_RO"
	VerbGeoSearch            Verb = "GEOSEARCH"
	VerbGeoSearchStore       Verb = "GEOSEARCHSTORE"
	VerbGet                  Verb = "GET"
	VerbGetBit               Verb = "GETBIT"
	VerbGetDel               Verb = "GETDEL"
	VerbGetEx                Verb = "GETEX"
	VerbGetRange             Verb = "GETRANGE"
	VerbGetSet               Verb = "GETSET"
	VerbHDel                 Verb = "HDEL"
	VerbHello                Verb = "HELLO"
	VerbHExists              Verb = "HEXISTS"
	VerbHGet                 Verb = "HGET"
	VerbHGetAll              Verb = "HGETALL"
	VerbHIncrBy              Verb = "HINCRBY"
	VerbHIncrByFloat         Verb = "HINCRBYFLOAT"
	VerbHKeys                Verb = "HKEYS"
	VerbHLen                 Verb = "HLEN"
	VerbHMGet                Verb = "HMGET"
	VerbHMSet                Verb = "HMSET"
	VerbHRandField           Verb = "HRANDFIELD"
	VerbHScan                Verb = "HSCAN"
	VerbHSet                 Verb = "HSET"
	VerbHSetNX               Verb = "HSETNX"
	VerbHStrLen              Verb = "HSTRLEN"
	VerbHVals                Verb = "HVALS"
	VerbIncr                 Verb = "INCR"
	VerbIncrBy               Verb = "INCRBY"
	VerbIncrByFloat          Verb = "INCRBYFLOAT"
	VerbInfo                 Verb = "INFO"
	VerbKeys                 Verb = "KEYS"
	VerbLastSave             Verb = "LASTSAVE"
	VerbLatency              Verb = "LATENCY"
	VerbLCS                  Verb = "LCS"
	VerbLIndex               Verb = "LINDEX"
	VerbLInsert              Verb = "LINSERT"
	VerbLLen                 Verb = "LLEN"
	VerbLMove                Verb = "LMOVE"
	VerbLolwut               Verb = "LOLWUT"
	VerbLPop                 Verb = "LPOP"
	VerbLPos                 Verb = "LPOS"
	VerbLPush                Verb = "LPUSH"
	VerbLPushX               Verb = "LPUSHX"
	VerbLRange               Verb = "LRANGE"
	VerbLRem                 Verb = "LREM"
	VerbLSet                 Verb = "LSET"
	VerbLTrim                Verb = "LTRIM"
	VerbMemory               Verb = "MEMORY"
	VerbMGet                 Verb = "MGET"
	VerbMigrate              Verb = "MIGRATE"
	VerbModule               Verb = "MODULE"
	VerbMonitor              Verb = "MONITOR"
	VerbMove                 Verb = "MOVE"
	VerbMSet                 Verb = "MSET"
	VerbMSetNX               Verb = "MSETNX"
	VerbMulti                Verb = "MULTI"
	VerbObject               Verb = "OBJECT"
	VerbPersist              Verb = "PERSIST"
	VerbPExpire              Verb = "PEXPIRE"
	VerbPExpireAt            Verb = "PEXPIREAT"
	VerbPFAdd                Verb = "PFADD"
	VerbPFCount              Verb = "PFCOUNT"
	VerbPFMerge              Verb = "PFMERGE"
	VerbPing                 Verb = "PING"
	VerbPSetEx               Verb = "PSETEX"
	VerbPSubscribe           Verb = "PSUBSCRIBE"
	VerbPSync                Verb = "PSYNC"
	VerbPTTL                 Verb = "PTTL"
	VerbPublish              Verb = "PUBLISH"
	VerbPubSub               Verb = "PUBSUB"
	VerbPUnsubscribe         Verb = "PUNSUBSCRIBE"
	VerbRandomKey            Verb = "RANDOMKEY"
	VerbReadOnly             Verb = "READONLY"
	VerbReadWrite            Verb = "READWRITE"
	VerbRename               Verb = "RENAME"
	VerbRenameNX             Verb = "RENAMENX"
	VerbReplicaOf            Verb = "REPLICAOF"
	VerbReset                Verb = "RESET"
	VerbRestore              Verb = "RESTORE"
	VerbRole                 Verb = "ROLE"
	VerbRPop                 Verb = "RPOP"
	VerbRPopLPush            Verb = "RPOPLPUSH"
	VerbRPush                Verb = "RPUSH"
	VerbRPushX               Verb = "RPUSHX"
	VerbSAdd                 Verb = "SADD"
	VerbSave                 Verb = "SAVE"
	VerbScan                 Verb = "SCAN"
	VerbSCard                Verb = "SCARD"
	VerbScript               Verb = "SCRIPT"
	VerbSDiff                Verb = "SDIFF"
	VerbSDiffStore           Verb = "SDIFFSTORE"
	VerbSelect               Verb = "SELECT"
	VerbSet                  Verb = "SET"
	VerbSetBit               Verb = "SETBIT"
	VerbSetEx                Verb = "SETEX"
	VerbSetNX                Verb = "SETNX"
	VerbSetRange             Verb = "SETRANGE"
	VerbShutdown             Verb = "SHUTDOWN"
	VerbSInter               Verb = "SINTER"
	VerbSInterStore          Verb = "SINTERSTORE"
	VerbSIsMember            Verb = "SISMEMBER"
	VerbSlaveOf              Verb = "SLAVEOF"
	VerbSlowLog              Verb = "SLOWLOG"
	VerbSMembers             Verb = "SMEMBERS"
	VerbSMIsMember           Verb = "SMISMEMBER"
	VerbSMove                Verb = "SMOVE"
	VerbSort                 Verb = "SORT"
	VerbSPop                 Verb = "SPOP"
	VerbSRandMember          Verb = "SRANDMEMBER"
	VerbSRem                 Verb = "SREM"
	VerbSScan                Verb = "SSCAN"
	VerbStrAlgo              Verb = "STRALGO"
	VerbStrLen               Verb = "STRLEN"
	VerbSubscribe            Verb = "SUBSCRIBE"
	VerbSubstr               Verb = "SUBSTR"
	VerbSUnion               Verb = "SUNION"
	VerbSUnionStore          Verb = "SUNIONSTORE"
	VerbSwapDB               Verb = "SWAPDB"
	VerbSync                 Verb = "SYNC"
	VerbTime                 Verb = "TIME"
	VerbTouch                Verb = "TOUCH"
	VerbTTL                  Verb = "TTL"
	VerbType                 Verb = "TYPE"
	VerbUnlink               Verb = "UNLINK"
	VerbUnsubscribe          Verb = "UNSUBSCRIBE"
	VerbUnwatch              Verb = "UNWATCH"
	VerbWait                 Verb = "WAIT"
	VerbWatch                Verb = "WATCH"
	VerbXAck                 Verb = "XACK"
	VerbXAdd                 Verb = "XADD"
	VerbXAutoClaim           Verb = "XAUTOCLAIM"
	VerbXClaim               Verb = "XCLAIM"
	VerbXDel                 Verb = "XDEL"
	VerbXGroup               Verb = "XGROUP"
	VerbXInfo                Verb = "XINFO"
	VerbXLen                 Verb = "XLEN"
	VerbXPending             Verb = "XPENDING"
	VerbXRange               Verb = "XRANGE"
	VerbXRead                Verb = "XREAD"
	VerbXReadGroup           Verb = "XREADGROUP"
	VerbXRevRange            Verb = "XREVRANGE"
	VerbXTrim                Verb = "XTRIM"
	VerbZAdd                 Verb = "ZADD"
	VerbZCard                Verb = "ZCARD"
	VerbZCount               Verb = "ZCOUNT"
	VerbZDiff                Verb = "ZDIFF"
	VerbZDiffStore           Verb = "ZDIFFSTORE"
	VerbZIncrBy              Verb = "ZINCRBY"
	VerbZInter               Verb = "ZINTER"
	VerbZInterStore          Verb = "ZINTERSTORE"
	VerbZLexCount            Verb = "ZLEXCOUNT"
	VerbZMScore              Verb = "ZMSCORE"
	VerbZPopMax              Verb = "ZPOPMAX"
	VerbZPopMin              Verb = "ZPOPMIN"
	VerbZRandMember          Verb = "ZRANDMEMBER"
	VerbZRange               Verb = "ZRANGE"
	VerbZRangeByLex          Verb = "ZRANGEBYLEX"
	VerbZRangeByScore        Verb = "ZRANGEBYSCORE"
	VerbZRangeStore          Verb = "ZRANGESTORE"
	VerbZRank                Verb = "ZRANK"
	VerbZRem                 Verb = "ZREM"
	VerbZRemRangeByLex       Verb = "ZREMRANGEBYLEX"
	VerbZRemRangeByRank      Verb = "ZREMRANGEBYRANK"
	VerbZRemRangeByScore     Verb = "ZREMRANGEBYSCORE"
	VerbZRevRange            Verb = "ZREVRANGE"
	VerbZRevRangeByLex       Verb = "ZREVRANGEBYLEX"
	VerbZRevRangeByScore     Verb = "ZREVRANGEBYSCORE"
	VerbZRevRank             Verb = "ZREVRANK"
	VerbZScan                Verb = "ZSCAN"
	VerbZScore               Verb = "ZSCORE"
	VerbZUnion               Verb = "ZUNION"
	VerbZUnionStore          Verb = "ZUNIONSTORE"
)

var verbs = []Verb{
	VerbACL, VerbAppend, VerbAsking, VerbAuth, VerbBgRewriteAOF, VerbBgSave,
	VerbBitCount, VerbBitField, VerbBitFieldRO, VerbBitOp, VerbBitPos,
	VerbBLMove, VerbBLPop, VerbBRPop, VerbBRPopLPush, VerbBZPopMax,
	VerbBZPopMin, VerbClient, VerbCluster, VerbCommand, VerbConfig, VerbCopy,
	VerbDBSize, VerbDebug, VerbDecr, VerbDecrBy, VerbDel, VerbDiscard,
	VerbDump, VerbEcho, VerbEval, VerbEvalSHA, VerbExec, VerbExists,
	VerbExpire, VerbExpireAt, VerbFailover, VerbFlushAll, VerbFlushDB,
	VerbGeoAdd, VerbGeoDist, VerbGeoHash, VerbGeoPos, VerbGeoRadius,
	VerbGeoRadiusRO, VerbGeoRadiusByMember, VerbGeoRadiusByMemberRO,
	VerbGeoSearch, VerbGeoSearchStore, VerbGet, VerbGetBit, VerbGetDel,
	VerbGetEx, VerbGetRange, VerbGetSet, VerbHDel, VerbHello, VerbHExists,
	VerbHGet, VerbHGetAll, VerbHIncrBy, VerbHIncrByFloat, VerbHKeys, VerbHLen,
	VerbHMGet, VerbHMSet, VerbHRandField, VerbHScan, VerbHSet, VerbHSetNX,
	VerbHStrLen, VerbHVals, VerbIncr, VerbIncrBy, VerbIncrByFloat, VerbInfo,
	VerbKeys, VerbLastSave, VerbLatency, VerbLCS, VerbLIndex, VerbLInsert,
	VerbLLen, VerbLMove, VerbLolwut, VerbLPop, VerbLPos, VerbLPush,
	VerbLPushX, VerbLRange, VerbLRem, VerbLSet, VerbLTrim, VerbMemory,
	VerbMGet, VerbMigrate, VerbModule, VerbMonitor, VerbMove, VerbMSet,
	VerbMSetNX, VerbMulti, VerbObject, VerbPersist, VerbPExpire,
	VerbPExpireAt, VerbPFAdd, VerbPFCount, VerbPFMerge, VerbPing, VerbPSetEx,
	VerbPSubscribe, VerbPSync, VerbPTTL, VerbPublish, VerbPubSub,
	VerbPUnsubscribe, VerbRandomKey, VerbReadOnly, VerbReadWrite, VerbRename,
	VerbRenameNX, VerbReplicaOf, VerbReset, VerbRestore, VerbRole, VerbRPop,
	VerbRPopLPush, VerbRPush, VerbRPushX, VerbSAdd, VerbSave, VerbScan,
	VerbSCard, VerbScript, VerbSDiff, VerbSDiffStore, VerbSelect, VerbSet,
	VerbSetBit, VerbSetEx, VerbSetNX, VerbSetRange, VerbShutdown, VerbSInter,
	VerbSInterStore, VerbSIsMember, VerbSlaveOf, VerbSlowLog, VerbSMembers,
	VerbSMIsMember, VerbSMove, VerbSort, VerbSPop, VerbSRandMember, VerbSRem,
	VerbSScan, VerbStrAlgo, VerbStrLen, VerbSubscribe, VerbSubstr,
	VerbSUnion, VerbSUnionStore, VerbSwapDB, VerbSync, VerbTime, VerbTouch,
	VerbTTL, VerbType, VerbUnlink, VerbUnsubscribe, VerbUnwatch, VerbWait,
	VerbWatch, VerbXAck, VerbXAdd, VerbXAutoClaim, VerbXClaim, VerbXDel,
	VerbXGroup, VerbXInfo, VerbXLen, VerbXPending, VerbXRange, VerbXRead,
	VerbXReadGroup, VerbXRevRange, VerbXTrim, VerbZAdd, VerbZCard,
	VerbZCount, VerbZDiff, VerbZDiffStore, VerbZIncrBy, VerbZInter,
	VerbZInterStore, VerbZLexCount, VerbZMScore, VerbZPopMax, VerbZPopMin,
	VerbZRandMember, VerbZRange, VerbZRangeByLex, VerbZRangeByScore,
	VerbZRangeStore, VerbZRank, VerbZRem, VerbZRemRangeByLex,
	VerbZRemRangeByRank, VerbZRemRangeByScore, VerbZRevRange,
	VerbZRevRangeByLex, VerbZRevRangeByScore, VerbZRevRank, VerbZScan,
	VerbZScore, VerbZUnion, VerbZUnionStore,
}

// verbsRequiringSubVerb lists the commands whose semantics are split into
// sub-commands (e.g. CONFIG GET / CONFIG SET).
var verbsRequiringSubVerb = []Verb{
	VerbACL, VerbClient, VerbCluster, VerbConfig,
	VerbMemory, VerbModule, VerbObject, VerbPubSub,
	VerbScript, VerbSlowLog, VerbXGroup, VerbXInfo,
}

// Verbs returns all known verbs.
func Verbs() []Verb {
	return append([]Verb(nil), verbs...)
}

// VerbsRequiringSubVerb returns the verbs that must be followed by a sub-verb.
func VerbsRequiringSubVerb() []Verb {
	return append([]Verb(nil), verbsRequiringSubVerb...)
}

// --------------------------------------------------------------------------
// SubVerb
// --------------------------------------------------------------------------

// SubVerb identifies a command modifier (e.g. NODES in CLUSTER NODES).
type SubVerb string

// NoSubVerb marks a query whose verb does not take a sub-verb.
const NoSubVerb SubVerb = ""

func (s SubVerb) String() string {
	return string(s)
}

const (
	SubVerbAddSlots            SubVerb = "ADDSLOTS"
	SubVerbAddSlotsRange       SubVerb = "ADDSLOTSRANGE"
	SubVerbBumpEpoch           SubVerb = "BUMPEPOCH"
	SubVerbCaching             SubVerb = "CACHING"
	SubVerbCat                 SubVerb = "CAT"
	SubVerbChannels            SubVerb = "CHANNELS"
	SubVerbConsumers           SubVerb = "CONSUMERS"
	SubVerbCount               SubVerb = "COUNT"
	SubVerbCountFailureReports SubVerb = "COUNT-FAILURE-REPORTS"
	SubVerbCountKeysInSlot     SubVerb = "COUNTKEYSINSLOT"
	SubVerbCreate              SubVerb = "CREATE"
	SubVerbCreateConsumer      SubVerb = "CREATECONSUMER"
	SubVerbDelConsumer         SubVerb = "DELCONSUMER"
	SubVerbDelSlots            SubVerb = "DELSLOTS"
	SubVerbDelSlotsRange       SubVerb = "DELSLOTSRANGE"
	SubVerbDelUser             SubVerb = "DELUSER"
	SubVerbDestroy             SubVerb = "DESTROY"
	SubVerbDoctor              SubVerb = "DOCTOR"
	SubVerbDryRun              SubVerb = "DRYRUN"
	SubVerbEncoding            SubVerb = "ENCODING"
	SubVerbExists              SubVerb = "EXISTS"
	SubVerbFailover            SubVerb = "FAILOVER"
	SubVerbFlush               SubVerb = "FLUSH"
	SubVerbFlushSlots          SubVerb = "FLUSHSLOTS"
	SubVerbForget              SubVerb = "FORGET"
	SubVerbFreq                SubVerb = "FREQ"
	SubVerbGenPass             SubVerb = "GENPASS"
	SubVerbGet                 SubVerb = "GET"
	SubVerbGetKeysInSlot       SubVerb = "GETKEYSINSLOT"
	SubVerbGetName             SubVerb = "GETNAME"
	SubVerbGetRedir            SubVerb = "GETREDIR"
	SubVerbGetUser             SubVerb = "GETUSER"
	SubVerbGroups              SubVerb = "GROUPS"
	SubVerbHelp                SubVerb = "HELP"
	SubVerbID                  SubVerb = "ID"
	SubVerbIdleTime            SubVerb = "IDLETIME"
	SubVerbInfo                SubVerb = "INFO"
	SubVerbKeySlot             SubVerb = "KEYSLOT"
	SubVerbKill                SubVerb = "KILL"
	SubVerbLen                 SubVerb = "LEN"
	SubVerbLinks               SubVerb = "LINKS"
	SubVerbList                SubVerb = "LIST"
	SubVerbLoad                SubVerb = "LOAD"
	SubVerbLoadEx              SubVerb = "LOADEX"
	SubVerbLog                 SubVerb = "LOG"
	SubVerbMallocStats         SubVerb = "MALLOC-STATS"
	SubVerbMeet                SubVerb = "MEET"
	SubVerbMyID                SubVerb = "MYID"
	SubVerbMyShardID           SubVerb = "MYSHARDID"
	SubVerbNodes               SubVerb = "NODES"
	SubVerbNoEvict             SubVerb = "NO-EVICT"
	SubVerbNoTouch             SubVerb = "NO-TOUCH"
	SubVerbNumPat              SubVerb = "NUMPAT"
	SubVerbNumSub              SubVerb = "NUMSUB"
	SubVerbPause               SubVerb = "PAUSE"
	SubVerbPurge               SubVerb = "PURGE"
	SubVerbRefCount            SubVerb = "REFCOUNT"
	SubVerbReplicas            SubVerb = "REPLICAS"
	SubVerbReplicate           SubVerb = "REPLICATE"
	SubVerbReply               SubVerb = "REPLY"
	SubVerbReset               SubVerb = "RESET"
	SubVerbResetStat           SubVerb = "RESETSTAT"
	SubVerbRewrite             SubVerb = "REWRITE"
	SubVerbSave                SubVerb = "SAVE"
	SubVerbSaveConfig          SubVerb = "SAVECONFIG"
	SubVerbSet                 SubVerb = "SET"
	SubVerbSetConfigEpoch      SubVerb = "SET-CONFIG-EPOCH"
	SubVerbSetID               SubVerb = "SETID"
	SubVerbSetInfo             SubVerb = "SETINFO"
	SubVerbSetName             SubVerb = "SETNAME"
	SubVerbSetSlot             SubVerb = "SETSLOT"
	SubVerbSetUser             SubVerb = "SETUSER"
	SubVerbShardChannels       SubVerb = "SHARDCHANNELS"
	SubVerbShardNumSub         SubVerb = "SHARDNUMSUB"
	SubVerbShards              SubVerb = "SHARDS"
	SubVerbSlaves              SubVerb = "SLAVES"
	SubVerbSlots               SubVerb = "SLOTS"
	SubVerbStats               SubVerb = "STATS"
	SubVerbStream              SubVerb = "STREAM"
	SubVerbTracking            SubVerb = "TRACKING"
	SubVerbTrackingInfo        SubVerb = "TRACKINGINFO"
	SubVerbUnblock             SubVerb = "UNBLOCK"
	SubVerbUnload              SubVerb = "UNLOAD"
	SubVerbUnpause             SubVerb = "UNPAUSE"
	SubVerbUsage               SubVerb = "USAGE"
	SubVerbUsers               SubVerb = "USERS"
	SubVerbWhoAmI              SubVerb = "WHOAMI"
)

var subVerbs = []SubVerb{
	SubVerbAddSlots, SubVerbAddSlotsRange, SubVerbBumpEpoch, SubVerbCaching,
	SubVerbCat, SubVerbChannels, SubVerbConsumers, SubVerbCount,
	SubVerbCountFailureReports, SubVerbCountKeysInSlot, SubVerbCreate,
	SubVerbCreateConsumer, SubVerbDelConsumer, SubVerbDelSlots,
	SubVerbDelSlotsRange, SubVerbDelUser, SubVerbDestroy, SubVerbDoctor,
	SubVerbDryRun, SubVerbEncoding, SubVerbExists, SubVerbFailover,
	SubVerbFlush, SubVerbFlushSlots, SubVerbForget, SubVerbFreq,
	SubVerbGenPass, SubVerbGet, SubVerbGetKeysInSlot, SubVerbGetName,
	SubVerbGetRedir, SubVerbGetUser, SubVerbGroups, SubVerbHelp, SubVerbID,
	SubVerbIdleTime, SubVerbInfo, SubVerbKeySlot, SubVerbKill, SubVerbLen,
	SubVerbLinks, SubVerbList, SubVerbLoad, SubVerbLoadEx, SubVerbLog,
	SubVerbMallocStats, SubVerbMeet, SubVerbMyID, SubVerbMyShardID,
	SubVerbNodes, SubVerbNoEvict, SubVerbNoTouch, SubVerbNumPat,
	SubVerbNumSub, SubVerbPause, SubVerbPurge, SubVerbRefCount,
	SubVerbReplicas, SubVerbReplicate, SubVerbReply, SubVerbReset,
	SubVerbResetStat, SubVerbRewrite, SubVerbSave, SubVerbSaveConfig,
	SubVerbSet, SubVerbSetConfigEpoch, SubVerbSetID, SubVerbSetInfo,
	SubVerbSetName, SubVerbSetSlot, SubVerbSetUser, SubVerbShardChannels,
	SubVerbShardNumSub, SubVerbShards, SubVerbSlaves, SubVerbSlots,
	SubVerbStats, SubVerbStream, SubVerbTracking, SubVerbTrackingInfo,
	SubVerbUnblock, SubVerbUnload, SubVerbUnpause, SubVerbUsage,
	SubVerbUsers, SubVerbWhoAmI,
}

// SubVerbs returns all known sub-verbs.
func SubVerbs() []SubVerb {
	return append([]SubVerb(nil), subVerbs...)
}

// --------------------------------------------------------------------------
// Vocabulary
// --------------------------------------------------------------------------

// Vocabulary holds the lookup tables used by the Normalizer.
// The tables are built once in NewVocabulary and never modified afterwards,
// so a Vocabulary can be shared between goroutines without synchronization.
type Vocabulary struct {
	verbs           map[string]Verb
	subVerbs        map[string]SubVerb
	requiresSubVerb map[Verb]struct{}
}

// NewVocabulary builds a vocabulary from the given verbs and sub-verbs.
// Every verb in requiring must be followed by a sub-verb.
func NewVocabulary(verbs []Verb, subVerbs []SubVerb, requiring []Verb) *Vocabulary {
	v := &Vocabulary{
		verbs:           make(map[string]Verb, len(verbs)),
		subVerbs:        make(map[string]SubVerb, len(subVerbs)),
		requiresSubVerb: make(map[Verb]struct{}, len(requiring)),
	}
	for _, verb := range verbs {
		v.verbs[string(verb)] = verb
	}
	for _, subVerb := range subVerbs {
		v.subVerbs[string(subVerb)] = subVerb
	}
	for _, verb := range requiring {
		v.requiresSubVerb[verb] = struct{}{}
	}
	return v
}

var defaultVocabulary = sync.OnceValue(func() *Vocabulary {
	return NewVocabulary(verbs, subVerbs, verbsRequiringSubVerb)
})

// DefaultVocabulary returns the vocabulary of all known verbs and sub-verbs.
// It is built on first use and shared afterwards.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary()
}

// LookupVerb resolves an already upper-cased token to a verb.
func (v *Vocabulary) LookupVerb(token string) (Verb, bool) {
	verb, ok := v.verbs[token]
	return verb, ok
}

// LookupSubVerb resolves an already upper-cased token to a sub-verb.
func (v *Vocabulary) LookupSubVerb(token string) (SubVerb, bool) {
	subVerb, ok := v.subVerbs[token]
	return subVerb, ok
}

// RequiresSubVerb reports whether verb must be followed by a sub-verb.
func (v *Vocabulary) RequiresSubVerb(verb Verb) bool {
	_, ok := v.requiresSubVerb[verb]
	return ok
}
