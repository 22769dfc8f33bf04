package console

import "github.com/rileyhilliard/tfui/internal/ansi"

// Surface is the append-only styled text sink the renderer draws into.
type Surface interface {
	// Append adds text to the end of the surface. A "\n" ends the current line.
	Append(text string, styles ansi.StyleState)
	// DeleteLastLine removes the most recent line, terminated or not.
	DeleteLastLine()
	// ScrollToEnd asks the surface to show its newest content.
	ScrollToEnd()
}
