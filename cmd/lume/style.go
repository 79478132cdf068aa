package main

import "github.com/charmbracelet/lipgloss"

var (
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
)

// styles 终端输出样式，关闭颜色时全部为空样式
type styles struct {
	err  lipgloss.Style
	ok   lipgloss.Style
	pos  lipgloss.Style
	code lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{err: plain, ok: plain, pos: plain, code: plain}
	}
	return styles{
		err:  lipgloss.NewStyle().Foreground(colorError).Bold(true),
		ok:   lipgloss.NewStyle().Foreground(colorSuccess),
		pos:  lipgloss.NewStyle().Bold(true),
		code: lipgloss.NewStyle().Foreground(colorMuted),
	}
}
