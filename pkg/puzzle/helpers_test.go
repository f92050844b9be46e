package puzzle

// fixedRand 按顺序返回预设值（对 n 取模）
type fixedRand struct {
	values []int
	next   int
}

func (r *fixedRand) IntN(n int) int {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}
