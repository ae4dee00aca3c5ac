package assets

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in page template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// StyleNames lists the built-in stylesheet names.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
