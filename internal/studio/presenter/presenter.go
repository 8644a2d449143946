// Package presenter 处理用户操作并驱动图片集合的状态迁移
package presenter

import (
	"context"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"z-image-studio/internal/studio/client"
	"z-image-studio/internal/studio/gallery"
	"z-image-studio/internal/studio/speech"
)

// MinPromptLength 客户端提示词最小长度（去除首尾空白后）
const MinPromptLength = 3

// 面向用户的提示消息
const (
	MsgEmptyPrompt      = "Please enter a prompt"
	MsgPromptTooShort   = "Prompt must be at least 3 characters long"
	MsgBusy             = "Image generation already in progress"
	MsgImageNotFound    = "Image not found"
	MsgDeleted          = "Image deleted"
	MsgDownloaded       = "Image downloaded successfully!"
	MsgDownloadFailed   = "Failed to download image"
	MsgVoiceUnsupported = "Voice input is not supported in your environment"
	MsgVoiceCaptured    = "Voice input captured!"
	MsgVoiceFailed      = "Voice input failed. Please try again."
	MsgListening        = "Listening... Speak now!"
	MsgViewFailed       = "Failed to open image"
)

// PromptError 提示词未通过客户端校验
type PromptError struct {
	Message string
}

func (e *PromptError) Error() string {
	return e.Message
}

// GenerationClient 图片生成服务客户端
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) client.Result
	Regenerate(ctx context.Context, prompt string, id int64) client.Result
}

// Notifier 短暂的提示通知
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Options 可选配置
type Options struct {
	// DownloadDir 下载目录，默认当前目录
	DownloadDir string
	// ViewDir 全尺寸查看时的临时目录，默认系统临时目录
	ViewDir string
	// Speech 语音能力，nil 表示不支持
	Speech speech.Recognizer
	// Now 时钟，测试时注入
	Now func() time.Time
}

// Presenter 组件树根，持有图片集合与进行中标记
type Presenter struct {
	client   GenerationClient
	store    *gallery.Store
	notifier Notifier
	speech   speech.Recognizer

	downloadDir string
	viewDir     string
	now         func() time.Time

	// generating 单请求进行中标记，仅用于阻止重复提交
	generating bool
	draft      string
}

// New 创建 Presenter
func New(c GenerationClient, notifier Notifier, opts Options) *Presenter {
	if opts.DownloadDir == "" {
		opts.DownloadDir = "."
	}
	if opts.ViewDir == "" {
		opts.ViewDir = os.TempDir()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Presenter{
		client:      c,
		store:       gallery.NewStore(),
		notifier:    notifier,
		speech:      opts.Speech,
		downloadDir: opts.DownloadDir,
		viewDir:     opts.ViewDir,
		now:         opts.Now,
	}
}

// ValidatePrompt 返回去除首尾空白后的提示词
func ValidatePrompt(prompt string) (string, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return "", &PromptError{Message: MsgEmptyPrompt}
	}
	if utf8.RuneCountInString(trimmed) < MinPromptLength {
		return "", &PromptError{Message: MsgPromptTooShort}
	}
	return trimmed, nil
}

// Generating 是否有请求进行中
func (p *Presenter) Generating() bool {
	return p.generating
}

// VoiceSupported 是否支持语音输入
func (p *Presenter) VoiceSupported() bool {
	return p.speech != nil
}

// Draft 当前提示词草稿
func (p *Presenter) Draft() string {
	return p.draft
}

// SetDraft 替换提示词草稿
func (p *Presenter) SetDraft(draft string) {
	p.draft = draft
}

// Images 当前图片集合，最新在前
func (p *Presenter) Images() []gallery.GeneratedImage {
	return p.store.State().Images
}

// SubmitDraft 提交当前草稿
func (p *Presenter) SubmitDraft(ctx context.Context) bool {
	return p.Submit(ctx, p.draft)
}

// Submit 校验并生成新图片，成功时插入集合顶部并清空草稿
func (p *Presenter) Submit(ctx context.Context, prompt string) bool {
	trimmed, err := ValidatePrompt(prompt)
	if err != nil {
		p.notifier.Error(err.Error())
		return false
	}
	if !p.begin() {
		return false
	}
	defer p.end()

	result := p.client.Generate(ctx, trimmed)
	if !result.Success || result.Image == nil {
		p.notifier.Error(result.Message)
		return false
	}

	now := p.now()
	p.store.Dispatch(gallery.Created{Image: gallery.GeneratedImage{
		ID:        p.store.NextID(now),
		ImageURL:  result.Image.DataURI,
		Prompt:    result.Image.Prompt,
		Seed:      result.Image.Seed,
		Timestamp: now,
	}})
	p.draft = ""
	p.notifier.Success(result.Message)
	return true
}

// Regenerate 用原提示词重新生成，成功时原位替换
// 请求返回前目标被删除时不会复活（已知竞态，提示仍为成功）
func (p *Presenter) Regenerate(ctx context.Context, id int64) bool {
	img, ok := p.store.State().Find(id)
	if !ok {
		p.notifier.Error(MsgImageNotFound)
		return false
	}
	if !p.begin() {
		return false
	}
	defer p.end()

	result := p.client.Regenerate(ctx, img.Prompt, id)
	if !result.Success || result.Image == nil {
		p.notifier.Error(result.Message)
		return false
	}

	p.store.Dispatch(gallery.Regenerated{
		ID:        id,
		ImageURL:  result.Image.DataURI,
		Prompt:    result.Image.Prompt,
		Seed:      result.Image.Seed,
		Timestamp: p.now(),
	})
	p.notifier.Success(result.Message)
	return true
}

// Delete 删除图片，重复删除无副作用
func (p *Presenter) Delete(id int64) {
	p.store.Dispatch(gallery.Removed{ID: id})
	p.notifier.Success(MsgDeleted)
}

// Dictate 监听一句语音并追加到草稿
func (p *Presenter) Dictate(ctx context.Context) bool {
	if p.speech == nil {
		p.notifier.Error(MsgVoiceUnsupported)
		return false
	}

	p.notifier.Info(MsgListening)
	utterance, err := p.speech.Listen(ctx)
	if err != nil {
		p.notifier.Error(MsgVoiceFailed)
		return false
	}

	p.draft = speech.Append(p.draft, utterance)
	p.notifier.Success(MsgVoiceCaptured)
	return true
}

// begin 设置进行中标记，已有请求时拒绝
func (p *Presenter) begin() bool {
	if p.generating {
		p.notifier.Error(MsgBusy)
		return false
	}
	p.generating = true
	return true
}

func (p *Presenter) end() {
	p.generating = false
}
