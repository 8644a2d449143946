package presenter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	promptPreviewLength = 80
	timestampLayout     = "Jan 2, 03:04 PM"
)

var examplePrompts = []string{
	"A majestic dragon flying over a medieval castle",
	"Cyberpunk cityscape at night with neon lights",
	"Portrait of a wise old wizard in a magical forest",
}

// TruncatePrompt 超过 max 个字符时截断并追加省略号
func TruncatePrompt(prompt string, max int) string {
	runes := []rune(prompt)
	if len(runes) <= max {
		return prompt
	}
	return string(runes[:max]) + "..."
}

// Render 输出图片列表，最新在前
func (p *Presenter) Render(w io.Writer) {
	images := p.Images()
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)

	if len(images) == 0 {
		header.Fprintln(w, "No images generated yet")
		fmt.Fprintln(w, "Start by entering a prompt to generate your first AI image!")
		dim.Fprintln(w, "Try prompts like:")
		for _, ex := range examplePrompts {
			dim.Fprintf(w, "  • %q\n", ex)
		}
		return
	}

	header.Fprintf(w, "Generated Images (%d)", len(images))
	dim.Fprintln(w, "  Latest first")
	for _, img := range images {
		fmt.Fprintf(w, "  [%d] %s\n", img.ID, TruncatePrompt(img.Prompt, promptPreviewLength))
		dim.Fprintf(w, "       %s  Seed: %d\n", img.Timestamp.Format(timestampLayout), img.Seed)
	}
}
