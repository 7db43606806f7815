package store

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoicely/internal/clock"
)

const (
	IDStrategyMillis    = "millis"
	IDStrategySnowflake = "snowflake"
)

// IDSource proposes identifiers. The store forces each proposal above
// every identifier it already holds.
type IDSource interface {
	Next() int64
}

// ClockIDs proposes the creation instant in Unix milliseconds. Values
// stay below 2^53 so browser clients read them exactly.
type ClockIDs struct {
	Clock clock.Clock
}

func (c ClockIDs) Next() int64 {
	return c.Clock.Now().UnixMilli()
}

// SnowflakeIDs proposes node-scoped snowflake identifiers, for several
// processes sharing one SQL or redis slot.
type SnowflakeIDs struct {
	Node *snowflake.Node
}

func (s SnowflakeIDs) Next() int64 {
	return s.Node.Generate().Int64()
}

// NewIDSource picks the source named by strategy; anything unknown falls
// back to clock milliseconds.
func NewIDSource(strategy string, c clock.Clock, node *snowflake.Node) IDSource {
	if strings.EqualFold(strings.TrimSpace(strategy), IDStrategySnowflake) && node != nil {
		return SnowflakeIDs{Node: node}
	}
	return ClockIDs{Clock: c}
}
