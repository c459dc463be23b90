package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"podcaster/internal/core"
)

// DefaultOutputDir is used when no output directory is given.
const DefaultOutputDir = "scripts"

var (
	now         = time.Now
	nonSlugChar = regexp.MustCompile(`[^a-z0-9]+`)
)

// MarkdownScript renders a script as a markdown document. Each line becomes a
// numbered entry with the speaker in bold and the audio effect in italics.
func MarkdownScript(topic string, lines []core.DialogueLine) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", topic)
	fmt.Fprintf(&b, "*Generated %s*\n\n", now().UTC().Format("2006-01-02"))

	if len(lines) == 0 {
		b.WriteString("No dialogue was generated for this episode.\n")
		return b.String()
	}

	for i, line := range lines {
		fmt.Fprintf(&b, "%d. **%s:** %s", i+1, line.Speaker, line.Text)
		if line.AudioEffect != "" {
			fmt.Fprintf(&b, " *(%s)*", line.AudioEffect)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n---\n\nTotal lines: %d\n", len(lines))
	return b.String()
}

// RenderMarkdownScript writes the script for topic into outputDir and returns
// the file path. Files are named script_<topic-slug>_<date>.md.
func RenderMarkdownScript(topic string, lines []core.DialogueLine, outputDir string) (string, error) {
	filename := fmt.Sprintf("script_%s_%s.md", Slug(topic), now().UTC().Format("2006-01-02"))
	return WriteScriptToFile(MarkdownScript(topic, lines), outputDir, filename)
}

// WriteScriptToFile writes content to outputDir/filename, creating the
// directory if needed.
func WriteScriptToFile(content, outputDir, filename string) (string, error) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write script file %s: %w", filePath, err)
	}

	return filePath, nil
}

// Slug lowercases topic and collapses anything that is not a letter or digit
// into single dashes.
func Slug(topic string) string {
	slug := strings.Trim(nonSlugChar.ReplaceAllString(strings.ToLower(topic), "-"), "-")
	if slug == "" {
		return "episode"
	}
	return slug
}
