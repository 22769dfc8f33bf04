// Package cli implements the tfui command-line interface.
//
// # Command Structure
//
// The root command opens the full-screen UI for a Terraform directory;
// subcommands cover headless use and housekeeping:
//
//	tfui [dir]                 - Variable form and live console
//	tfui run <command> [dir]   - Stream one terraform command to stdout
//	tfui init [dir]            - Create .tfui.yaml
//	tfui logs [clean]          - List or prune run transcripts
//	tfui version               - Build information
//
// Both the UI and `run` feed terraform output through the same pipeline:
// terraform.Runner pumps both pipes into an output.Queue, which is drained
// on the render interval into a console.Renderer. The UI renders into a
// viewport; `run` uses console.StreamSurface on stdout.
//
// # Flag Handling
//
// Global flags (--config, --no-color, --verbose) are defined on the root
// command. --verbose sets TFUI_DEBUG so debug logging reaches both the
// headless path and the UI's debug log file.
package cli
