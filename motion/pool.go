package motion

import "sync"

// tickContext is the scratch data of a single tick.
type tickContext struct {
	dt float32

	jumped     bool
	wallJumped bool
	landed     bool
}

var ctxPool = sync.Pool{
	New: func() any {
		return &tickContext{}
	},
}

func newCtx(dt float32) *tickContext {
	ctx := ctxPool.Get().(*tickContext)
	ctx.dt = dt
	return ctx
}

func putCtx(ctx *tickContext) {
	ctx.reset()
	ctxPool.Put(ctx)
}

func (ctx *tickContext) reset() {
	ctx.dt = 0
	ctx.jumped = false
	ctx.wallJumped = false
	ctx.landed = false
}
