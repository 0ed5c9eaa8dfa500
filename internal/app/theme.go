package app

import "charm.land/lipgloss/v2"

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	pickerMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	detailHdrStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117"))
	errorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	errorBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var (
	userTileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	assistantTileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	textTileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	reasoningTileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	toolTileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	fileTileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	subtaskTileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("176"))
	controlTileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var toolTileStyles = map[string]lipgloss.Style{
	"tool:bash":      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	"tool:read":      lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	"tool:write":     lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	"tool:edit":      lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	"tool:grep":      lipgloss.NewStyle().Foreground(lipgloss.Color("149")),
	"tool:glob":      lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
	"tool:list":      lipgloss.NewStyle().Foreground(lipgloss.Color("109")),
	"tool:webfetch":  lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
	"tool:todowrite": lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	"tool:task":      lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
}

func tileStyle(colorType string, selected bool) lipgloss.Style {
	style, ok := toolTileStyles[colorType]
	if !ok {
		switch colorType {
		case "user":
			style = userTileStyle
		case "assistant":
			style = assistantTileStyle
		case "text":
			style = textTileStyle
		case "reasoning":
			style = reasoningTileStyle
		case "file":
			style = fileTileStyle
		case "subtask":
			style = subtaskTileStyle
		case "control":
			style = controlTileStyle
		default:
			if len(colorType) >= 4 && colorType[:4] == "tool" {
				style = toolTileStyle
			} else {
				style = controlTileStyle
			}
		}
	}
	if selected {
		return style.Background(lipgloss.Color("236")).Bold(true).Faint(false)
	}
	return style
}
