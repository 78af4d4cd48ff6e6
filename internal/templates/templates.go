// Package templates embeds the scaffold files used to repair missing build
// prerequisites.
package templates

import (
	"embed"
	"fmt"
)

//go:embed files
var files embed.FS

// Read returns the embedded template with the given name.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile("files/" + name)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return data, nil
}
