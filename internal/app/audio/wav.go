package audio

import (
	"bytes"
	"encoding/binary"

	"voxi/internal/app/engine"
)

// EncodeWAV renders a window as a 16-bit PCM mono WAV blob, the lowest
// common denominator the HTTP transcription engines accept.
func EncodeWAV(window engine.Window) []byte {
	dataSize := len(window.Samples) * 2
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(buf, binary.LittleEndian, uint32(window.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(window.SampleRate*2)) // byte rate
	binary.Write(buf, binary.LittleEndian, uint16(2))                   // block align
	binary.Write(buf, binary.LittleEndian, uint16(16))                  // bits per sample

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range window.Samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.Write(buf, binary.LittleEndian, int16(s*32767))
	}
	return buf.Bytes()
}
