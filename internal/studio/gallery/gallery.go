// Package gallery 维护已生成图片的有序集合（最新在前）
package gallery

import (
	"time"
)

// GeneratedImage 已生成的图片
type GeneratedImage struct {
	// ID 首次生成时的毫秒时间戳，重新生成时保持不变
	ID int64
	// ImageURL data URI
	ImageURL  string
	Prompt    string
	Seed      int64
	Timestamp time.Time
}

// State 图片集合，下标 0 为最新
type State struct {
	Images []GeneratedImage
}

// Action 状态迁移事件
type Action interface {
	isAction()
}

// Created 新图片生成成功
type Created struct {
	Image GeneratedImage
}

// Regenerated 已有图片重新生成成功
type Regenerated struct {
	ID        int64
	ImageURL  string
	Prompt    string
	Seed      int64
	Timestamp time.Time
}

// Removed 删除图片
type Removed struct {
	ID int64
}

func (Created) isAction()     {}
func (Regenerated) isAction() {}
func (Removed) isAction()     {}

// Reduce 纯函数状态迁移，不修改入参
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Created:
		// ID 唯一
		if _, ok := s.Find(a.Image.ID); ok {
			return s
		}
		images := make([]GeneratedImage, 0, len(s.Images)+1)
		images = append(images, a.Image)
		images = append(images, s.Images...)
		return State{Images: images}

	case Regenerated:
		idx := s.index(a.ID)
		if idx < 0 {
			// 目标已被删除时不复活
			return s
		}
		images := make([]GeneratedImage, len(s.Images))
		copy(images, s.Images)
		images[idx] = GeneratedImage{
			ID:        a.ID,
			ImageURL:  a.ImageURL,
			Prompt:    a.Prompt,
			Seed:      a.Seed,
			Timestamp: a.Timestamp,
		}
		return State{Images: images}

	case Removed:
		if s.index(a.ID) < 0 {
			return s
		}
		images := make([]GeneratedImage, 0, len(s.Images)-1)
		for _, img := range s.Images {
			if img.ID != a.ID {
				images = append(images, img)
			}
		}
		return State{Images: images}

	default:
		return s
	}
}

// Len 图片数量
func (s State) Len() int {
	return len(s.Images)
}

// Find 按 ID 查找
func (s State) Find(id int64) (GeneratedImage, bool) {
	idx := s.index(id)
	if idx < 0 {
		return GeneratedImage{}, false
	}
	return s.Images[idx], true
}

// Position 返回 ID 所在下标，不存在时为 -1
func (s State) Position(id int64) int {
	return s.index(id)
}

func (s State) index(id int64) int {
	for i, img := range s.Images {
		if img.ID == id {
			return i
		}
	}
	return -1
}
