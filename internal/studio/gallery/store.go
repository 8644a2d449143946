package gallery

import (
	"time"
)

// Store 持有当前状态并逐个应用事件
// 不是并发安全的，所有迁移需在同一个 goroutine 上执行
type Store struct {
	state  State
	lastID int64
}

// NewStore 创建空集合
func NewStore() *Store {
	return &Store{}
}

// Dispatch 应用一个事件并返回新状态
func (s *Store) Dispatch(a Action) State {
	s.state = Reduce(s.state, a)
	return s.state
}

// State 当前状态
func (s *Store) State() State {
	return s.state
}

// NextID 以毫秒时间戳分配 ID，同一毫秒内多次分配时递增，保证唯一
func (s *Store) NextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
