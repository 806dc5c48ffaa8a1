package terminal

// hostEmulator guesses the terminal program this process runs in from the
// variables each one exports. Returns "" when unknown.
func hostEmulator(getenv func(string) string) string {
	switch {
	case getenv("TERM_PROGRAM") == "WezTerm":
		return "wezterm"
	case getenv("KONSOLE_VERSION") != "":
		return "konsole"
	case getenv("GNOME_TERMINAL_SCREEN") != "" || getenv("GNOME_TERMINAL_SERVICE") != "":
		return "gnome-terminal"
	case getenv("ALACRITTY_WINDOW_ID") != "" || getenv("ALACRITTY_SOCKET") != "":
		return "alacritty"
	case getenv("TERMINATOR_UUID") != "":
		return "terminator"
	case getenv("XTERM_VERSION") != "":
		return "xterm"
	}
	return ""
}
