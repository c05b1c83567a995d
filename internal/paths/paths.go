package paths

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// ProjectRoot is the directory of the go.mod governing the working
// directory, or "" outside a module.
func ProjectRoot() string {
	goModPath, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return ""
	}

	goMod := strings.TrimSpace(string(goModPath))
	if goMod == "" || goMod == "/dev/null" {
		return ""
	}

	return filepath.Dir(goMod)
}

// Rel shortens path relative to root when it lives under it.
func Rel(root, path string) string {
	if root == "" {
		return path
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}

// Trunc fits path in maxWidth columns, keeping the file name and as many
// trailing directories as fit after a "..." prefix.
func Trunc(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}

	dir, filename := filepath.Split(path)
	availableSpace := maxWidth - len(filename) - 3
	if len(filename) >= maxWidth || availableSpace <= 0 {
		return filename
	}

	sep := string(filepath.Separator)
	dirParts := strings.Split(strings.TrimSuffix(dir, sep), sep)

	var truncatedDir string
	for i := len(dirParts) - 1; i >= 0; i-- {
		nextPart := dirParts[i] + sep

		if len(nextPart)+len(truncatedDir) > availableSpace {
			if truncatedDir == "" {
				truncatedDir = nextPart[max(len(nextPart)-availableSpace, 0):]
			}
			break
		}

		truncatedDir = nextPart + truncatedDir
	}

	return "..." + truncatedDir + filename
}
