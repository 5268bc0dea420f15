package render

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"zkcli/internal/zkclient"
)

// ShouldColorize resolves an [output] color mode ("auto", "always" or
// "never") against the destination writer. Auto colors only terminals and
// honours NO_COLOR.
func ShouldColorize(writer io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NodeName renders name the way listings show it: a trailing separator when
// the node has children, bold green when it holds data and bold blue
// otherwise, italic when ephemeral.
func NodeName(name string, stat zkclient.Stat, color bool) string {
	if stat.NumChildren > 0 && name != "/" {
		name += "/"
	}
	if !color {
		return name
	}
	return text.Escape(name, nodeColors(stat).EscapeSeq())
}

func nodeColors(stat zkclient.Stat) text.Colors {
	colors := text.Colors{text.Bold}
	if stat.DataLength > 0 {
		colors = append(colors, text.FgGreen)
	} else {
		colors = append(colors, text.FgBlue)
	}
	if stat.Ephemeral() {
		colors = append(colors, text.Italic)
	}
	return colors
}
