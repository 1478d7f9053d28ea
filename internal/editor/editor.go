// Package editor opens the exported file for review after a
// successful export.
package editor

import (
	"errors"
	"os"
	"os/exec"
)

// Preferred finds the user's editor from $VISUAL or $EDITOR, falling
// back to common terminal editors on the PATH.
func Preferred() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// Open launches the user's editor on path, attached to the terminal.
// VISUAL/EDITOR values carrying flags are honored via a shell wrapper.
func Open(path string) error {
	ed, err := Preferred()
	if err != nil {
		return err
	}

	cmd := exec.Command("sh", "-c", `$EDITORCMD "$FILEPATH"`)
	cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
