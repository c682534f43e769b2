package rgb2gray

// BT.601 luma coefficients in 16.16 fixed point; they add up to 65536, so the
// weighted sum shifted right by 16 always fits into a byte.
const (
	lumaR = 19595 // 0.299 * 65536
	lumaG = 38470 // 0.587 * 65536
	lumaB = 7471  // 0.114 * 65536
)

// bgrxToGray converts one B,G,R,x pixel. The shift wraps around.
func bgrxToGray(p []byte, shift uint8, invert bool) uint8 {
	_ = p[3]
	b := uint32(p[0])
	g := uint32(p[1])
	r := uint32(p[2])

	gray := uint8((r*lumaR+g*lumaG+b*lumaB)>>16) + shift
	if invert {
		return 255 - gray
	}
	return gray
}
