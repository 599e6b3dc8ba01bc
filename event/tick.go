package event

import (
	"bytes"

	"github.com/oomph-ac/charsim/utils"
)

// TickEvent closes a world tick. It is published after every character's events for the tick.
type TickEvent struct {
	NopEvent

	Characters int
}

func (TickEvent) ID() byte {
	return EventIDTick
}

func (ev TickEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteLInt32(buf, int32(ev.Characters))
	})
}
