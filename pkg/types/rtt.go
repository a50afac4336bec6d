package types

import "time"

// ============================================================================
//                              Rtt - 往返时延
// ============================================================================

// Rtt 单个节点的往返时延统计
//
// 维护两条指数衰减均值：
//   - DecayFast 每个样本权重 3/10，快速跟随变化
//   - DecaySlow 每个样本权重 1/10，平滑异常值
//
// 失败的测量只增加连续失败计数，不改变时延数据。
type Rtt struct {
	current   time.Duration
	decayFast time.Duration
	decaySlow time.Duration
	failures  uint32
}

// NewRtt 以首个样本初始化
func NewRtt(sample time.Duration) Rtt {
	return Rtt{
		current:   sample,
		decayFast: sample,
		decaySlow: sample,
	}
}

// Register 记录一次成功的测量
func (r *Rtt) Register(sample time.Duration) {
	r.current = sample
	r.decayFast = r.decayFast*7/10 + sample*3/10
	r.decaySlow = r.decaySlow*9/10 + sample/10
	r.failures = 0
}

// RegisterFailure 记录一次失败的测量
func (r *Rtt) RegisterFailure() {
	r.failures++
}

// Current 最近一次成功测量的时延
func (r Rtt) Current() time.Duration {
	return r.current
}

// DecayFast 快速衰减均值
func (r Rtt) DecayFast() time.Duration {
	return r.decayFast
}

// DecaySlow 慢速衰减均值
func (r Rtt) DecaySlow() time.Duration {
	return r.decaySlow
}

// Failures 连续失败次数
func (r Rtt) Failures() uint32 {
	return r.failures
}
