package utils

import (
	"sync"
	"sync/atomic"

	"github.com/ethaniccc/float32-cube/cube"
)

// BBoxListPool is a pool of reusable BBox slices used by world queries.
var BBoxListPool = sync.Pool{
	New: func() any {
		s := make([]cube.BBox, 0, 32)
		return &s
	},
}

// PoolStats tracks pool usage.
type PoolStats struct {
	BBoxListGets int64
	BBoxListPuts int64
}

var bboxGets, bboxPuts atomic.Int64

// GetBBoxList retrieves an empty BBox slice from the pool.
func GetBBoxList() *[]cube.BBox {
	bboxGets.Add(1)
	list := BBoxListPool.Get().(*[]cube.BBox)
	*list = (*list)[:0]
	return list
}

// PutBBoxList returns a BBox slice to the pool.
func PutBBoxList(list *[]cube.BBox) {
	if list == nil {
		return
	}
	bboxPuts.Add(1)
	*list = (*list)[:0]
	BBoxListPool.Put(list)
}

// GetPoolStats returns current pool statistics.
func GetPoolStats() PoolStats {
	return PoolStats{BBoxListGets: bboxGets.Load(), BBoxListPuts: bboxPuts.Load()}
}
