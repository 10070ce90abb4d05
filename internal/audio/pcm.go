package audio

import (
	"encoding/binary"
	"math"
)

// appendPCM16 encodes interleaved samples as signed 16-bit little endian.
func appendPCM16(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}
	return dst
}

// downmixPCM16 averages each frame of interleaved s16le PCM into one float
// sample in [-1, 1). Trailing partial frames are ignored.
func downmixPCM16(dst []float64, pcm []byte, channels int) []float64 {
	dst = dst[:0]
	frameSize := channels * 2
	for off := 0; off+frameSize <= len(pcm); off += frameSize {
		var sum float64
		for ch := range channels {
			sum += float64(int16(binary.LittleEndian.Uint16(pcm[off+ch*2:])))
		}
		dst = append(dst, sum/float64(channels)/32768.0)
	}
	return dst
}

// decodeFloat32 converts little-endian float32 samples to float64.
func decodeFloat32(dst []float64, raw []byte) []float64 {
	dst = dst[:0]
	for off := 0; off+4 <= len(raw); off += 4 {
		dst = append(dst, float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[off:]))))
	}
	return dst
}

// clamp16 converts a sample at the given bit depth to 16 bits.
func clamp16(sample, bitDepth int) int16 {
	switch {
	case bitDepth > 16:
		sample >>= bitDepth - 16
	case bitDepth < 16:
		sample <<= 16 - bitDepth
	}
	if sample > math.MaxInt16 {
		sample = math.MaxInt16
	} else if sample < math.MinInt16 {
		sample = math.MinInt16
	}
	return int16(sample)
}
