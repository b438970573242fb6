package view

// SessionFormFooter lists the session form keys.
func SessionFormFooter(styles ModalStyles) string {
	return RenderKeyHints(styles, styles.PrimaryKey,
		KeyHint{"Enter", "Save"}, KeyHint{"Tab", "Next"}, KeyHint{"←/→", "Color"}, KeyHint{"Esc", "Cancel"})
}

// SessionDetailFooter lists the keys available on a session's details.
func SessionDetailFooter(styles ModalStyles) string {
	return RenderKeyHints(styles, styles.PrimaryKey,
		KeyHint{"e", "Edit"}, KeyHint{"m", "Move"}, KeyHint{"r", "Resize"}, KeyHint{"x", "Delete"}, KeyHint{"Esc", "Close"})
}

// ConfirmDeleteFooter lists the delete confirmation keys.
func ConfirmDeleteFooter(styles ModalStyles) string {
	return RenderKeyHints(styles, styles.DangerKey,
		KeyHint{"y/Enter", "Delete"}, KeyHint{"n/Esc", "Cancel"})
}
