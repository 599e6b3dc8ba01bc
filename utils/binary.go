package utils

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/charsim/oerror"
)

func WriteLInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func WriteLUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func WriteLFloat32(buf *bytes.Buffer, f float32) {
	WriteLInt32(buf, int32(math.Float32bits(f)))
}

func WriteBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteByte(1)
		return
	}
	buf.WriteByte(0)
}

// WriteString writes s prefixed with its length as a little-endian uint32.
func WriteString(buf *bytes.Buffer, s string) {
	WriteLInt32(buf, int32(len(s)))
	buf.WriteString(s)
}

func WriteVec3(buf *bytes.Buffer, v mgl32.Vec3) {
	for _, f := range v {
		WriteLFloat32(buf, f)
	}
}

func WriteQuat(buf *bytes.Buffer, q mgl32.Quat) {
	WriteLFloat32(buf, q.W)
	WriteVec3(buf, q.V)
}

func LInt32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func LInt64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

func LFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Reader decodes values written by the Write helpers. The first short read sticks: every later
// read returns a zero value and Err reports the failure.
type Reader struct {
	buf *bytes.Buffer
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: bytes.NewBuffer(b)}
}

func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.buf.Len() < n {
		r.err = oerror.New("short buffer: need %d bytes, have %d: %v", n, r.buf.Len(), io.ErrUnexpectedEOF)
		return nil
	}
	return r.buf.Next(n)
}

func (r *Reader) Byte() byte {
	if b := r.next(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *Reader) Bool() bool {
	return r.Byte() != 0
}

func (r *Reader) Int32() int32 {
	if b := r.next(4); b != nil {
		return LInt32(b)
	}
	return 0
}

func (r *Reader) Int64() int64 {
	if b := r.next(8); b != nil {
		return LInt64(b)
	}
	return 0
}

func (r *Reader) Uint64() uint64 {
	return uint64(r.Int64())
}

func (r *Reader) Float32() float32 {
	if b := r.next(4); b != nil {
		return LFloat32(b)
	}
	return 0
}

func (r *Reader) String() string {
	n := r.Int32()
	if b := r.next(int(n)); b != nil {
		return string(b)
	}
	return ""
}

func (r *Reader) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{r.Float32(), r.Float32(), r.Float32()}
}

func (r *Reader) Quat() mgl32.Quat {
	w := r.Float32()
	return mgl32.Quat{W: w, V: r.Vec3()}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return r.buf.Len()
}

func (r *Reader) Err() error {
	return r.err
}
