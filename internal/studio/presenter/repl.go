package presenter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// maxLineBytes 单行输入上限，粘贴的长提示词也能完整读取
const maxLineBytes = 1 << 20

const helpText = `Commands:
  <text>        generate an image from the prompt
  :regen <id>   regenerate an image with its original prompt
  :rm <id>      delete an image
  :dl <id>      save an image to the download directory
  :view <id>    write a full-size copy and print its path
  :ls           list images
  :mic          dictate and append to the draft
  :send         submit the current draft
  :help         show this help
  :quit         exit`

// Run 读取命令行输入并分派到对应操作，输入结束或 :quit 时返回
func (p *Presenter) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	p.Render(out)
	fmt.Fprintln(out, "Type :help for commands.")

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ":") {
			if line == "" {
				continue
			}
			p.SetDraft(line)
			if _, err := ValidatePrompt(line); err == nil {
				p.announceGenerating(out)
			}
			if p.SubmitDraft(ctx) {
				p.Render(out)
			}
			continue
		}

		cmd, arg, _ := strings.Cut(line[1:], " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "quit", "q", "exit":
			return nil
		case "help", "h":
			fmt.Fprintln(out, helpText)
		case "ls":
			p.Render(out)
		case "send":
			if _, err := ValidatePrompt(p.Draft()); err == nil {
				p.announceGenerating(out)
			}
			if p.SubmitDraft(ctx) {
				p.Render(out)
			}
		case "mic":
			if p.Dictate(ctx) {
				fmt.Fprintf(out, "Draft: %s\n", p.Draft())
			}
		case "regen", "rm", "dl", "view":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				p.notifier.Error(MsgImageNotFound)
				continue
			}
			p.runImageCommand(ctx, out, cmd, id)
		default:
			fmt.Fprintf(out, "Unknown command %q. Type :help for commands.\n", cmd)
		}
	}
}

func (p *Presenter) runImageCommand(ctx context.Context, out io.Writer, cmd string, id int64) {
	switch cmd {
	case "regen":
		if _, ok := p.store.State().Find(id); ok {
			p.announceGenerating(out)
		}
		if p.Regenerate(ctx, id) {
			p.Render(out)
		}
	case "rm":
		p.Delete(id)
		p.Render(out)
	case "dl":
		if path, err := p.Download(id); err == nil {
			fmt.Fprintln(out, path)
		}
	case "view":
		_, _ = p.View(id)
	}
}

// announceGenerating 在同步调用开始前输出进行中提示
func (p *Presenter) announceGenerating(out io.Writer) {
	if p.generating {
		return
	}
	color.New(color.FgMagenta).Fprintln(out, "  Generating...")
}
