package dispatch

import (
	"github.com/ValentinKolb/kvql/lib/convert"
)

func configGet(b Backend, params []string) (any, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, err
	}
	return b.ConfigGet(params[0]), nil
}

func configSet(b Backend, params []string) (any, error) {
	if err := arity(params, 2, 2); err != nil {
		return nil, err
	}
	if err := b.ConfigSet(params[0], params[1]); err != nil {
		return nil, err
	}
	return replyOK, nil
}

func moduleList(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 0, 0); err != nil {
		return nil, convert.KeyModule, err
	}
	return b.ModuleList(), convert.KeyModule, nil
}

func aclWhoAmI(b Backend, params []string) (any, error) {
	if err := arity(params, 0, 0); err != nil {
		return nil, err
	}
	return b.ACLWhoAmI(), nil
}

func aclUsers(b Backend, params []string) (any, error) {
	if err := arity(params, 0, 0); err != nil {
		return nil, err
	}
	return b.ACLUsers(), nil
}

func aclGetUser(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 1, 1); err != nil {
		return nil, convert.KeyAccessControlUser, err
	}
	return b.ACLGetUser(params[0]), convert.KeyAccessControlUser, nil
}

func aclSetUser(b Backend, params []string) (any, error) {
	if err := arity(params, 1, -1); err != nil {
		return nil, err
	}
	if err := b.ACLSetUser(params[0], params[1:]...); err != nil {
		return nil, err
	}
	return replyOK, nil
}

func aclDelUser(b Backend, params []string) (any, error) {
	if err := arity(params, 1, -1); err != nil {
		return nil, err
	}
	return b.ACLDelUser(params...)
}

// aclLog handles "ACL LOG [count | RESET]".
func aclLog(b Backend, params []string) (any, convert.Key, error) {
	if err := arity(params, 0, 1); err != nil {
		return nil, convert.KeyAccessControlLogEntry, err
	}
	count := 10
	if len(params) == 1 {
		if is(params[0], "RESET") {
			b.ACLLogReset()
			return replyOK, convert.KeyPlain, nil
		}
		var err error
		if count, err = parseCount(params[0]); err != nil {
			return nil, convert.KeyAccessControlLogEntry, err
		}
	}
	return b.ACLLog(count), convert.KeyAccessControlLogEntry, nil
}
