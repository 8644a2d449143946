package presenter

import (
	"io"

	"github.com/fatih/color"
)

// ConsoleNotifier 终端通知
type ConsoleNotifier struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
	info    *color.Color
}

// NewConsoleNotifier 创建终端通知
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		info:    color.New(color.FgCyan),
	}
}

// Success 成功提示
func (n *ConsoleNotifier) Success(msg string) {
	n.success.Fprintf(n.out, "✓ %s\n", msg)
}

// Error 失败提示
func (n *ConsoleNotifier) Error(msg string) {
	n.failure.Fprintf(n.out, "✗ %s\n", msg)
}

// Info 普通提示
func (n *ConsoleNotifier) Info(msg string) {
	n.info.Fprintf(n.out, "• %s\n", msg)
}
