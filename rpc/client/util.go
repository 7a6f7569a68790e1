package client

import (
	"time"

	"github.com/ValentinKolb/kvql/rpc/common"
)

// timeout bounds a whole query including all retries
func timeout(config common.ClientConfig) time.Duration {
	return time.Duration(config.TimeoutSecond*max(1, config.RetryCount)) * time.Second
}
