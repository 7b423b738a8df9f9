package emailtemplate

import (
	"context"
	"fmt"

	mjmlgo "github.com/Boostport/mjml-go"
)

// CompileMJML converts rendered MJML markup to HTML
func CompileMJML(ctx context.Context, source string) (string, error) {
	html, err := mjmlgo.ToHTML(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to compile mjml: %w", err)
	}
	return html, nil
}
