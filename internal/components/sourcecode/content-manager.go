package sourcecode

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	lru "github.com/hashicorp/golang-lru/v2"
)

const cachedFiles = 4

var ansiSequence = regexp.MustCompile("\x1b\\[[0-9;]*m")

// contentManager reads and highlights source files and keeps the most recent
// ones in memory.
type contentManager struct {
	contentCache *lru.Cache[string, []string]
	readFile     func(string) ([]byte, error)
}

func newContentManager() contentManager {
	contentCache, err := lru.New[string, []string](cachedFiles)
	if err != nil {
		panic(err)
	}
	return contentManager{
		contentCache: contentCache,
		readFile:     os.ReadFile,
	}
}

func (m *contentManager) getSourceCode(filename string) ([]string, error) {
	if content, ok := m.contentCache.Get(filename); ok {
		return content, nil
	}

	content, err := m.readFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %s: %w", filename, err)
	}

	colorizedContent, err := colorize(string(content))
	if err != nil {
		return nil, err
	}
	lines := strings.Split(colorizedContent, "\n")
	if n := len(lines); n > 0 && strings.TrimSpace(ansiSequence.ReplaceAllString(lines[n-1], "")) == "" {
		lines = lines[:n-1]
	}
	m.contentCache.Add(filename, lines)

	return lines, nil
}

func colorize(content string) (string, error) {
	sb := strings.Builder{}

	err := quick.Highlight(&sb, content, "go", "terminal8", "native")
	if err != nil {
		return "", fmt.Errorf("error highlighting the source code: %w", err)
	}

	return sb.String(), nil
}
