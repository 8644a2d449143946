// Package speech 提供可选的语音输入能力
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoSpeech 未识别到内容
var ErrNoSpeech = errors.New("speech: no utterance recognized")

// Recognizer 宿主环境提供的语音识别能力
type Recognizer interface {
	// Listen 阻塞直到识别出一句话
	Listen(ctx context.Context) (string, error)
}

// CommandRecognizer 通过外部命令识别语音，命令需将识别文本写到 stdout
type CommandRecognizer struct {
	path string
	args []string
}

// Detect 检测语音能力，命令为空或不可执行时返回 nil
func Detect(command string) Recognizer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil
	}
	return &CommandRecognizer{path: path, args: fields[1:]}
}

// Listen 运行外部命令并返回去除空白后的输出
func (r *CommandRecognizer) Listen(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path, r.args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("speech: %w: %s", err, msg)
		}
		return "", fmt.Errorf("speech: %w", err)
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// Append 将识别结果追加到当前草稿，以空格分隔
func Append(draft, utterance string) string {
	if draft == "" {
		return utterance
	}
	return draft + " " + utterance
}
