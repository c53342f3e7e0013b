package tui

const helpMarkdown = `# Snipbook keys

## Browse

| Key | Action |
|-----|--------|
| up/down, j/k | move the cursor |
| left/right, h/l | collapse / expand folders |
| enter | run snippet (prompts for arguments), toggle folder |
| y | yank the raw command to the clipboard |
| tab / shift+tab | switch tabs |
| < / > | reorder the active tab |
| / | search everywhere |
| m or space | grab the item for moving |

## Editing

| Key | Action |
|-----|--------|
| a | add snippet |
| f | add folder |
| s | add separator |
| t | add tab |
| r | rename |
| c / C | set color (C cascades to descendants) |
| d | delete (children are promoted, never lost) |
| X | cycle exec mode: terminal, editor, locked |

## Move mode

| Key | Action |
|-----|--------|
| up/down | swap with siblings |
| right | nest into the folder above (collapsed folders open after a pause) |
| left | pull out of the current folder |
| [ / ] | carry to the neighboring tab |
| esc, enter | drop |

Commands may embed placeholders like ` + "`{{arg$1:Host}}`" + `; running such a
snippet prompts for each one in order. Esc during any prompt cancels the
whole run.
`

func (m appModel) helpView(width int) string {
	w := width - 2
	if w > 76 {
		w = 76
	}
	return renderMarkdown(helpMarkdown, w)
}
