package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ValentinKolb/kvql/lib/reply"
)

var ErrWrongPass = errors.New("WRONGPASS invalid username-password pair or user is disabled.")

// --------------------------------------------------------------------------
// Config & Modules
// --------------------------------------------------------------------------

// ConfigGet returns all parameters matching the glob pattern.
func (e *Engine) ConfigGet(pattern string) map[string]string {
	params := make(map[string]string)
	e.config.Range(func(k, v string) bool {
		if Match(pattern, k) {
			params[k] = v
		}
		return true
	})
	return params
}

// ConfigSet changes a known parameter.
func (e *Engine) ConfigSet(param, value string) error {
	param = strings.ToLower(param)
	if _, ok := e.config.Load(param); !ok {
		return fmt.Errorf("ERR Unknown option or number of arguments for CONFIG SET - '%s'", param)
	}
	e.config.Store(param, value)
	return nil
}

// ModuleList returns the configured modules.
func (e *Engine) ModuleList() []reply.Module {
	return append(make([]reply.Module, 0, len(e.modules)), e.modules...)
}

// --------------------------------------------------------------------------
// Users
// --------------------------------------------------------------------------

const defaultUser = "default"

// user is never modified after it was stored, SETUSER stores a changed copy.
type user struct {
	name      string
	enabled   bool
	noPass    bool
	passwords []string // sha256 hex
	keys      []string
	commands  []string
}

func newDefaultUser() *user {
	return &user{
		name:     defaultUser,
		enabled:  true,
		noPass:   true,
		keys:     []string{"*"},
		commands: []string{"+@all"},
	}
}

func (u *user) clone() *user {
	c := *u
	c.passwords = append([]string(nil), u.passwords...)
	c.keys = append([]string(nil), u.keys...)
	c.commands = append([]string(nil), u.commands...)
	return &c
}

func (u *user) describe() reply.AccessControlUser {
	flags := make([]string, 0, 3)
	if u.enabled {
		flags = append(flags, "on")
	} else {
		flags = append(flags, "off")
	}
	for _, k := range u.keys {
		if k == "*" {
			flags = append(flags, "allkeys")
			break
		}
	}
	if u.noPass {
		flags = append(flags, "nopass")
	}

	commands := "-@all"
	if len(u.commands) > 0 {
		commands = strings.Join(u.commands, " ")
	}
	return reply.AccessControlUser{
		Flags:     flags,
		Keys:      append(make([]string, 0, len(u.keys)), u.keys...),
		Passwords: append(make([]string, 0, len(u.passwords)), u.passwords...),
		Commands:  commands,
	}
}

// apply changes the user according to one ACL SETUSER rule.
func (u *user) apply(rule string) error {
	lower := strings.ToLower(rule)
	switch {
	case lower == "on":
		u.enabled = true
	case lower == "off":
		u.enabled = false
	case lower == "nopass":
		u.noPass = true
		u.passwords = nil
	case lower == "resetpass":
		u.noPass = false
		u.passwords = nil
	case lower == "allkeys":
		u.keys = []string{"*"}
	case lower == "resetkeys":
		u.keys = nil
	case lower == "allcommands":
		u.commands = []string{"+@all"}
	case lower == "nocommands":
		u.commands = nil
	case lower == "reset":
		*u = user{name: u.name}
	case strings.HasPrefix(rule, ">") && len(rule) > 1:
		hash := hashPassword(rule[1:])
		u.noPass = false
		for _, p := range u.passwords {
			if p == hash {
				return nil
			}
		}
		u.passwords = append(u.passwords, hash)
	case strings.HasPrefix(rule, "<") && len(rule) > 1:
		hash := hashPassword(rule[1:])
		for i, p := range u.passwords {
			if p == hash {
				u.passwords = append(u.passwords[:i], u.passwords[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("ERR Error in ACL SETUSER modifier '%s': no such password", rule)
	case strings.HasPrefix(rule, "~") && len(rule) > 1:
		u.keys = append(u.keys, rule[1:])
	case (strings.HasPrefix(rule, "+") || strings.HasPrefix(rule, "-")) && len(rule) > 1:
		u.commands = append(u.commands, lower)
	default:
		return fmt.Errorf("ERR Error in ACL SETUSER modifier '%s': Syntax error", rule)
	}
	return nil
}

func (u *user) authenticate(password string) bool {
	if !u.enabled {
		return false
	}
	if u.noPass {
		return true
	}
	hash := hashPassword(password)
	for _, p := range u.passwords {
		if p == hash {
			return true
		}
	}
	return false
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// ACLSetUser creates or changes a user. New users start disabled without
// passwords, keys or commands. Either all rules apply or none.
func (e *Engine) ACLSetUser(name string, rules ...string) error {
	var err error
	e.users.Compute(name, func(old *user, loaded bool) (*user, bool) {
		u := &user{name: name}
		if loaded {
			u = old.clone()
		}
		for _, rule := range rules {
			if err = u.apply(rule); err != nil {
				return old, !loaded
			}
		}
		return u, false
	})
	return err
}

// ACLDelUser removes users and returns how many existed. The default user
// cannot be removed.
func (e *Engine) ACLDelUser(names ...string) (int64, error) {
	var removed int64
	for _, name := range names {
		if name == defaultUser {
			return removed, fmt.Errorf("ERR The 'default' user cannot be removed")
		}
		if _, ok := e.users.LoadAndDelete(name); ok {
			removed++
		}
	}
	return removed, nil
}

// ACLGetUser describes a user, nil if it does not exist.
func (e *Engine) ACLGetUser(name string) *reply.AccessControlUser {
	u, ok := e.users.Load(name)
	if !ok {
		return nil
	}
	described := u.describe()
	return &described
}

// ACLUsers returns all user names, sorted.
func (e *Engine) ACLUsers() []string {
	names := make([]string, 0, e.users.Size())
	e.users.Range(func(name string, _ *user) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// ACLWhoAmI returns the user of the current connection. The engine has no
// connections, so this is always the default user.
func (e *Engine) ACLWhoAmI() string {
	return defaultUser
}

// Auth checks a username/password pair. Failures are recorded in the ACL log.
func (e *Engine) Auth(username, password string) error {
	if username == "" {
		username = defaultUser
	}
	if u, ok := e.users.Load(username); ok && u.authenticate(password) {
		return nil
	}
	e.logACL("auth", "toplevel", "AUTH", username)
	Logger.Warningf("failed AUTH attempt for user %q", username)
	return ErrWrongPass
}

// --------------------------------------------------------------------------
// ACL Log
// --------------------------------------------------------------------------

// aclLogGroupWindow is the time in which equal failures are counted as one entry.
const aclLogGroupWindow = 60 * time.Second

// aclLogMaxLen is the number of entries kept in the log.
const aclLogMaxLen = 128

type aclLogRecord struct {
	count    int64
	reason   string
	context  string
	object   string
	username string
	created  time.Time
	updated  time.Time
}

func (e *Engine) logACL(reason, context, object, username string) {
	now := e.now()
	e.aclMu.Lock()
	defer e.aclMu.Unlock()

	for i := range e.aclLog {
		r := &e.aclLog[i]
		if r.reason == reason && r.context == context && r.object == object && r.username == username &&
			now.Sub(r.updated) < aclLogGroupWindow {
			r.count++
			r.updated = now
			return
		}
	}
	e.aclLog = append(e.aclLog, aclLogRecord{
		count: 1, reason: reason, context: context, object: object, username: username,
		created: now, updated: now,
	})
	if len(e.aclLog) > aclLogMaxLen {
		e.aclLog = e.aclLog[len(e.aclLog)-aclLogMaxLen:]
	}
}

// ACLLog returns up to count entries, newest first (count <= 0 returns 10).
func (e *Engine) ACLLog(count int) []reply.AccessControlLogEntry {
	if count <= 0 {
		count = 10
	}
	now := e.now()
	e.aclMu.Lock()
	defer e.aclMu.Unlock()

	entries := make([]reply.AccessControlLogEntry, 0, min(count, len(e.aclLog)))
	for i := len(e.aclLog) - 1; i >= 0 && len(entries) < count; i-- {
		r := e.aclLog[i]
		entries = append(entries, reply.AccessControlLogEntry{
			Count:      r.count,
			Reason:     r.reason,
			Context:    r.context,
			Object:     r.object,
			Username:   r.username,
			AgeSeconds: now.Sub(r.created).Seconds(),
			ClientInfo: map[string]string{"cmd": strings.ToLower(r.object), "user": r.username},
		})
	}
	return entries
}

// ACLLogReset clears the ACL log.
func (e *Engine) ACLLogReset() {
	e.aclMu.Lock()
	e.aclLog = nil
	e.aclMu.Unlock()
}
