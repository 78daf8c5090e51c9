package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// 共享样式
var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptStyle   = lipgloss.NewStyle().MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	redCardStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Underline(true)
	declarerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
)

// suitSymbols 花色字母到符号的映射
var suitSymbols = map[byte]string{
	'C': "♣",
	'S': "♠",
	'H': "♥",
	'D': "♦",
}

// renderCard 把两字符牌码画成带花色符号的牌面，红花色标红
func renderCard(code string) string {
	if len(code) != 2 {
		return code
	}
	symbol, ok := suitSymbols[code[0]]
	if !ok {
		return code
	}

	face := symbol + string(code[1])
	if code[0] == 'H' || code[0] == 'D' {
		return redCardStyle.Render(face)
	}
	return blackStyle.Render(face)
}

// renderHand 渲染一排牌，cursor 处高亮，marked 中的牌加选中记号
func renderHand(codes []string, cursor int, marked map[int]bool) string {
	if len(codes) == 0 {
		return hintStyle.Render("（没有手牌）")
	}

	parts := make([]string, 0, len(codes))
	for i, code := range codes {
		cell := renderCard(code)
		if marked[i] {
			cell = "[" + cell + "]"
		}
		if i == cursor {
			cell = selectedStyle.Render("▸") + cell
		} else {
			cell = " " + cell
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, " ")
}
