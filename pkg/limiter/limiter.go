// Package limiter provides token-bucket rate limiting keyed per route.
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule binds a bucket to a key. FillInterval is the refill
// period, Quantum the tokens added per period.
type BucketRule struct {
	Key          string
	FillInterval time.Duration
	Capacity     int64
	Quantum      int64
}
