package ui

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/tfui/internal/errors"
)

// NewDirPicker builds a form that picks a directory starting at start. The
// chosen path is stored in dir; validate runs before the form accepts it.
func NewDirPicker(start string, dir *string, validate func(string) error) *huh.Form {
	picker := huh.NewFilePicker().
		Title("Select Terraform Directory").
		Description("enter opens a directory, choose the one holding variables.tf").
		CurrentDirectory(start).
		DirAllowed(true).
		FileAllowed(false).
		ShowHidden(false).
		Picking(true).
		Height(15).
		Value(dir)
	if validate != nil {
		picker = picker.Validate(validate)
	}
	return huh.NewForm(huh.NewGroup(picker)).WithShowHelp(true)
}

// PickDirectory displays the directory picker on the terminal. Returns ""
// with no error if the user cancels.
func PickDirectory(start string, validate func(string) error) (string, error) {
	return PickDirectoryWithOutput(start, validate, os.Stdout, os.Stdin)
}

// PickDirectoryWithOutput displays the directory picker using custom I/O.
func PickDirectoryWithOutput(start string, validate func(string) error, output io.Writer, input io.Reader) (string, error) {
	var dir string
	form := NewDirPicker(start, &dir, validate).WithOutput(output).WithInput(input)

	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Directory picker failed",
			"Pass the directory as an argument: tfui <dir>")
	}
	return dir, nil
}
