package webgpu

// copyAlignment is COPY_BUFFER_ALIGNMENT: buffer sizes mapped at creation
// and buffer-to-buffer copy sizes must be multiples of it.
const copyAlignment = 4

// alignedSize rounds a byte size up to copyAlignment, with a minimum of one
// aligned word so that empty uploads still get a valid buffer.
func alignedSize(n uint64) uint64 {
	if n < copyAlignment {
		return copyAlignment
	}
	return (n + copyAlignment - 1) &^ (copyAlignment - 1)
}
