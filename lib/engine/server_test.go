package engine

import (
	"testing"
	"time"

	"github.com/ValentinKolb/kvql/lib/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	e := New(WithConfig(map[string]string{"port": "7000"}))

	assert.Equal(t, map[string]string{"maxmemory": "0", "maxmemory-policy": "noeviction"}, e.ConfigGet("maxmemory*"))
	assert.Equal(t, map[string]string{"port": "7000"}, e.ConfigGet("port"))
	assert.Empty(t, e.ConfigGet("nothing"))

	require.NoError(t, e.ConfigSet("MAXMEMORY", "100mb"))
	assert.Equal(t, map[string]string{"maxmemory": "100mb"}, e.ConfigGet("maxmemory"))
	assert.Error(t, e.ConfigSet("unknown", "1"))
}

func TestModuleList(t *testing.T) {
	assert.Empty(t, New().ModuleList())

	e := New(WithModules(reply.Module{Name: "search", Version: 20612}))
	assert.Equal(t, []reply.Module{{Name: "search", Version: 20612}}, e.ModuleList())
}

func TestACLUsers(t *testing.T) {
	e := New()

	assert.Equal(t, []string{"default"}, e.ACLUsers())
	assert.Equal(t, "default", e.ACLWhoAmI())
	assert.Equal(t, &reply.AccessControlUser{
		Flags:     []string{"on", "allkeys", "nopass"},
		Keys:      []string{"*"},
		Passwords: []string{},
		Commands:  "+@all",
	}, e.ACLGetUser("default"))

	require.NoError(t, e.ACLSetUser("alice", "on", ">secret", "~cache:*", "+get"))
	assert.Equal(t, &reply.AccessControlUser{
		Flags:     []string{"on"},
		Keys:      []string{"cache:*"},
		Passwords: []string{hashPassword("secret")},
		Commands:  "+get",
	}, e.ACLGetUser("alice"))
	assert.Equal(t, []string{"alice", "default"}, e.ACLUsers())

	// a bad rule leaves the user untouched
	assert.Error(t, e.ACLSetUser("alice", "off", "bogus"))
	assert.Equal(t, []string{"on"}, e.ACLGetUser("alice").Flags)

	// a bad rule never creates a user
	assert.Error(t, e.ACLSetUser("bob", "bogus"))
	assert.Nil(t, e.ACLGetUser("bob"))

	require.NoError(t, e.ACLSetUser("carol"))
	assert.Equal(t, "-@all", e.ACLGetUser("carol").Commands)
	assert.Equal(t, []string{"off"}, e.ACLGetUser("carol").Flags)

	removed, err := e.ACLDelUser("carol", "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	_, err = e.ACLDelUser("default")
	assert.Error(t, err)
}

func TestAuthAndLog(t *testing.T) {
	clock, set := fixedClock(time.Unix(100, 0))
	e := New(clock)
	require.NoError(t, e.ACLSetUser("alice", "on", ">secret"))

	assert.NoError(t, e.Auth("", "anything"))
	assert.NoError(t, e.Auth("alice", "secret"))
	assert.ErrorIs(t, e.Auth("alice", "wrong"), ErrWrongPass)
	assert.ErrorIs(t, e.Auth("alice", "wrong"), ErrWrongPass)
	assert.ErrorIs(t, e.Auth("ghost", "x"), ErrWrongPass)

	set(time.Unix(130, 0))
	entries := e.ACLLog(0)
	require.Len(t, entries, 2)
	assert.Equal(t, "ghost", entries[0].Username)
	assert.Equal(t, reply.AccessControlLogEntry{
		Count:      2,
		Reason:     "auth",
		Context:    "toplevel",
		Object:     "AUTH",
		Username:   "alice",
		AgeSeconds: 30,
		ClientInfo: map[string]string{"cmd": "auth", "user": "alice"},
	}, entries[1])

	assert.Len(t, e.ACLLog(1), 1)

	// outside the grouping window a new entry is started
	set(time.Unix(300, 0))
	assert.Error(t, e.Auth("alice", "wrong"))
	assert.Len(t, e.ACLLog(10), 3)

	e.ACLLogReset()
	assert.Empty(t, e.ACLLog(10))
}
