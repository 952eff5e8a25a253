package util

// ReverseG returns a reversed copy of arr.
func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr))
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

// PackNodePair packs two node handles into one int64 set key. The smaller
// handle always goes into the low bits, so (a,b) and (b,a) produce the same
// key and segment sets stay symmetric.
func PackNodePair(a, b int32) int64 {
	if a > b {
		a, b = b, a
	}
	return int64(b)<<32 | int64(uint32(a))
}

// UnpackNodePair reverses PackNodePair.
func UnpackNodePair(packed int64) (int32, int32) {
	return int32(uint32(packed)), int32(packed >> 32)
}
