package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxi/internal/app/engine"
)

func TestEncodeWAV(t *testing.T) {
	window := engine.Window{
		Samples:    []float32{0, 0.5, -0.5, 1, -1, 2, -2},
		SampleRate: 16000,
	}
	blob := EncodeWAV(window)

	require.Len(t, blob, 44+len(window.Samples)*2)
	assert.Equal(t, "RIFF", string(blob[0:4]))
	assert.Equal(t, "WAVE", string(blob[8:12]))
	assert.Equal(t, "fmt ", string(blob[12:16]))
	assert.Equal(t, "data", string(blob[36:40]))

	assert.Equal(t, uint32(36+len(window.Samples)*2), binary.LittleEndian.Uint32(blob[4:8]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(blob[20:22]), "PCM format")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(blob[22:24]), "mono")
	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(blob[24:28]))
	assert.Equal(t, uint32(len(window.Samples)*2), binary.LittleEndian.Uint32(blob[40:44]))

	samples := blob[44:]
	read := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(samples[i*2 : i*2+2]))
	}
	assert.Equal(t, int16(0), read(0))
	assert.Equal(t, int16(16383), read(1))
	assert.Equal(t, int16(-16383), read(2))
	assert.Equal(t, int16(32767), read(3))
	assert.Equal(t, int16(-32767), read(4))
	// Out-of-range samples clamp instead of wrapping.
	assert.Equal(t, int16(32767), read(5))
	assert.Equal(t, int16(-32767), read(6))
}

func TestEncodeWAVEmptyWindow(t *testing.T) {
	blob := EncodeWAV(engine.Window{SampleRate: 16000})
	require.Len(t, blob, 44)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(blob[40:44]))
}
