package services

import (
	"fmt"
	"sync/atomic"
	"time"
)

// OrderNumberGenerator produces numbers of the form yyyyMMddHHmmssSSS followed by a
// three digit rolling sequence. Numbers are unique within one process for up to
// 1000 orders per millisecond; storage enforces uniqueness across processes.
type OrderNumberGenerator struct {
	now func() time.Time
	seq atomic.Uint32
}

// NewOrderNumberGenerator uses now as its clock, or time.Now when now is nil.
func NewOrderNumberGenerator(now func() time.Time) *OrderNumberGenerator {
	if now == nil {
		now = time.Now
	}
	return &OrderNumberGenerator{now: now}
}

func (g *OrderNumberGenerator) Next() string {
	t := g.now()
	seq := g.seq.Add(1) % 1000
	return fmt.Sprintf("%s%03d%03d", t.Format("20060102150405"), t.Nanosecond()/int(time.Millisecond), seq)
}
