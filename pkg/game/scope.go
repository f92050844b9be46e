package game

import "time"

// Timer 场景内的延时回调
// 由 Scope.Update 推进，语义同 TimerComponent：累计时间达到目标后触发一次
type Timer struct {
	Name    string
	Target  time.Duration
	Elapsed time.Duration

	fn      func()
	stopped bool
}

// Stop 取消计时器
func (t *Timer) Stop() {
	t.stopped = true
}

// Active 计时器是否仍在等待
func (t *Timer) Active() bool {
	return !t.stopped
}

// Scope 一个场景挂载期间获取的全部资源
//
// 场景的计时器和输入绑定都登记在 Scope 上。Close 之后所有计时器失效，
// 释放函数按登记的逆序执行，旧场景的回调不会再修改任何状态。
type Scope struct {
	scene    int
	timers   []*Timer
	releases []func()
	closed   bool
}

func newScope(scene int) *Scope {
	return &Scope{scene: scene}
}

// Scene 拥有该 Scope 的场景索引
func (s *Scope) Scene() int {
	return s.scene
}

// Closed 是否已被拆除
func (s *Scope) Closed() bool {
	return s.closed
}

// After 登记一个延时回调
// Scope 已关闭时返回一个已停止的计时器
func (s *Scope) After(name string, delay time.Duration, fn func()) *Timer {
	t := &Timer{Name: name, Target: delay, fn: fn}
	if s.closed {
		t.stopped = true
		return t
	}
	s.timers = append(s.timers, t)
	return t
}

// Defer 登记拆除时执行的释放函数
// Scope 已关闭时立即执行
func (s *Scope) Defer(release func()) {
	if s.closed {
		release()
		return
	}
	s.releases = append(s.releases, release)
}

// Cancel 取消指定名称的全部计时器，返回取消的数量
func (s *Scope) Cancel(name string) int {
	n := 0
	for _, t := range s.timers {
		if t.Name == name && !t.stopped {
			t.stopped = true
			n++
		}
	}
	return n
}

// Pending 是否有指定名称的计时器在等待
func (s *Scope) Pending(name string) bool {
	for _, t := range s.timers {
		if t.Name == name && !t.stopped {
			return true
		}
	}
	return false
}

// Update 推进计时器并触发到期的回调
//
// 回调可能切换场景从而关闭本 Scope，关闭后剩余的回调不再触发。
func (s *Scope) Update(dt time.Duration) {
	if s.closed {
		return
	}

	var due []*Timer
	for _, t := range s.timers {
		if t.stopped {
			continue
		}
		t.Elapsed += dt
		if t.Elapsed >= t.Target {
			due = append(due, t)
		}
	}

	for _, t := range due {
		if s.closed {
			return
		}
		if t.stopped {
			continue
		}
		t.stopped = true
		t.fn()
	}

	if s.closed {
		return
	}
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
}

// Close 取消所有计时器并执行释放函数，重复调用无副作用
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = nil
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}
