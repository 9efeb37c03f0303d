// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits x to [-1, 1].
func Clamp(x float32) float32 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}

// Float32ToInt16 scales a sample in [-1, 1] to 16-bit PCM. Out of range
// input is clamped and the result is truncated toward zero.
func Float32ToInt16(x float32) int16 {
	return int16(Clamp(x) * 32767)
}

// Float32ToInt scales a sample in [-1, 1] to signed PCM of bitDepth bits
// (8 to 32). 1 maps to the largest positive code.
func Float32ToInt(x float32, bitDepth int) int {
	full := fullScale(bitDepth)
	return int(float64(Clamp(x)) * (full - 1))
}

// IntToFloat32 maps signed PCM of bitDepth bits to [-1, 1). The most
// negative code maps to exactly -1.
func IntToFloat32(v, bitDepth int) float32 {
	return float32(float64(v) / fullScale(bitDepth))
}

// Int16ToFloat32 is IntToFloat32 for 16-bit samples.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

func fullScale(bitDepth int) float64 {
	bitDepth = min(max(bitDepth, 8), 32)
	return float64(uint64(1) << (bitDepth - 1))
}
