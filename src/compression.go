package mambo

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"google.golang.org/grpc/encoding"
)

const zstdName = "zstd"

// zstdCodec implements the gRPC encoding.Compressor interface using
// Zstandard. Weight vectors dominate the wire traffic and compress well
// once training sparsifies them.
type zstdCodec struct {
	level zstd.EncoderLevel
}

func (z *zstdCodec) Name() string {
	return zstdName
}

// Compress returns a WriteCloser that compresses data written to it.
func (z *zstdCodec) Compress(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(z.level))
}

// Decompress returns a Reader that decompresses data read from it.
func (z *zstdCodec) Decompress(r io.Reader) (io.Reader, error) {
	return zstd.NewReader(r)
}

func init() {
	encoding.RegisterCompressor(&zstdCodec{level: zstd.SpeedDefault})
}

// payloadRatio reports the compressed/original size ratio of a weight
// vector's wire payload. Logged at async init so operators can see what
// the codec buys them.
func payloadRatio(v Vec) float64 {
	raw := make([]byte, 0, v.Len()*8)
	for i := 0; i < v.Len(); i++ {
		raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(v.At(i)))
	}
	if len(raw) == 0 {
		return 1
	}
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 1
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return 1
	}
	w.Close()
	return float64(buf.Len()) / float64(len(raw))
}
