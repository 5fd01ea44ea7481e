package main

import (
	"os"
	"strings"

	"taskpad/internal/cli"
)

// Persistent flags that take a separate value token.
var valueFlags = map[string]bool{
	"--dir":    true,
	"--remote": true,
	"--config": true,
	"--format": true,
}

func isProjectID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "proj-") && len(s) > len("proj-")
}

// rewriteProjectShortcut turns `taskpad [flags] <project-id>` into
// `taskpad [flags] open <project-id>`. Cobra would otherwise read the id as a
// subcommand name.
func rewriteProjectShortcut(argv []string) []string {
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isProjectID(argv[i+1]) {
				return insertAt(argv, i+1, "open")
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isProjectID(a):
			return insertAt(argv, i, "open")
		default:
			return argv
		}
	}
	return argv
}

func insertAt(argv []string, i int, tokens ...string) []string {
	out := make([]string, 0, len(argv)+len(tokens))
	out = append(out, argv[:i]...)
	out = append(out, tokens...)
	return append(out, argv[i:]...)
}

func main() {
	os.Args = rewriteProjectShortcut(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
