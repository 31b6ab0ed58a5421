package proto

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// WriteFlusher is implemented by response writers that buffer writes and
// require explicit flushing. The server flushes after every frame so the
// client sees batches as they are produced.
type WriteFlusher interface {
	Flush() error
}

// compressedWriter wraps the response side of a connection with zstd
// streaming compression. Requests are always sent uncompressed; only the
// response stream of a request that set the compress flag goes through it.
type compressedWriter struct {
	encoder *zstd.Encoder
}

// newCompressedWriter uses level 1 (SpeedFastest) with single-threaded
// encoding.
func newCompressedWriter(w io.Writer) (*compressedWriter, error) {
	encoder, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return &compressedWriter{encoder: encoder}, nil
}

func (c *compressedWriter) Write(p []byte) (int, error) {
	return c.encoder.Write(p)
}

// Flush emits a syncable zstd frame so the decoder can consume buffered data
// immediately.
func (c *compressedWriter) Flush() error {
	return c.encoder.Flush()
}

// Close writes the end of the zstd stream. It does not close the underlying
// writer.
func (c *compressedWriter) Close() error {
	return c.encoder.Close()
}

// zstdMagic starts every zstd frame. A plain frame's length prefix never
// matches it because it would exceed MaxFrameSize.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// decompressedReader is the client half of compressedWriter.
type decompressedReader struct {
	decoder *zstd.Decoder
}

func newDecompressedReader(r io.Reader) (*decompressedReader, error) {
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &decompressedReader{decoder: decoder}, nil
}

func (d *decompressedReader) Read(p []byte) (int, error) {
	return d.decoder.Read(p)
}

// Close releases the decoder. Close the underlying connection first to
// unblock the decoder's background reader.
func (d *decompressedReader) Close() {
	d.decoder.Close()
}
