package puzzle

import "math/rand/v2"

// Rand 是判定逻辑依赖的随机数来源
// *rand.Rand 满足该接口；测试可以注入固定序列
type Rand interface {
	IntN(n int) int
}

// NewRand 创建一个可复现的随机数来源
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
