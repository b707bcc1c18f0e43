package http

// Themes maps selectable theme names to their stylesheet classes.
var Themes = map[string]string{
	"aydinlik": "theme-light",
	"karanlik": "theme-dark",
	"kagit":    "theme-paper",
}

// DefaultTheme is served until the visitor picks one.
const DefaultTheme = "aydinlik"
