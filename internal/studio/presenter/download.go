package presenter

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dataURIPrefix = "data:"
	// maxFilenamePrompt 文件名中提示词部分的最大字符数，保证文件名不超过 255 字节
	maxFilenamePrompt = 100
)

// ErrInvalidDataURI data URI 格式错误
var ErrInvalidDataURI = errors.New("invalid data URI")

// SanitizeFilename 将 [A-Za-z0-9] 之外的每个字符替换为连字符
func SanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// DownloadFilename 下载文件名：ai-generated-<提示词>-<毫秒时间戳>.png，提示词部分最多保留 100 个字符
func DownloadFilename(prompt string, at time.Time) string {
	if runes := []rune(prompt); len(runes) > maxFilenamePrompt {
		prompt = string(runes[:maxFilenamePrompt])
	}
	return fmt.Sprintf("ai-generated-%s-%d.png", SanitizeFilename(prompt), at.UnixMilli())
}

// DecodeDataURI 解码 base64 形式的 data URI
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(uri[len(dataURIPrefix):], ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, nil
}

// Download 将图片保存到下载目录并返回文件路径
func (p *Presenter) Download(id int64) (string, error) {
	path, err := p.download(id)
	if err != nil {
		p.notifier.Error(MsgDownloadFailed)
		return "", err
	}
	p.notifier.Success(MsgDownloaded)
	return path, nil
}

func (p *Presenter) download(id int64) (string, error) {
	img, ok := p.store.State().Find(id)
	if !ok {
		return "", fmt.Errorf("image %d not found", id)
	}
	data, err := DecodeDataURI(img.ImageURL)
	if err != nil {
		return "", err
	}
	path := filepath.Join(p.downloadDir, DownloadFilename(img.Prompt, p.now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// View 将全尺寸图片写入临时目录，返回可供外部查看器打开的路径
func (p *Presenter) View(id int64) (string, error) {
	img, ok := p.store.State().Find(id)
	if !ok {
		p.notifier.Error(MsgImageNotFound)
		return "", fmt.Errorf("image %d not found", id)
	}
	data, err := DecodeDataURI(img.ImageURL)
	if err != nil {
		p.notifier.Error(MsgViewFailed)
		return "", err
	}
	path := filepath.Join(p.viewDir, fmt.Sprintf("z-image-%d.png", img.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		p.notifier.Error(MsgViewFailed)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	p.notifier.Info(path)
	return path, nil
}
