package parsing

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// filenameQuoteChars are stripped from around custom filenames, covering both
// ASCII and curly quote styles.
const filenameQuoteChars = "\"“”‘’'"

// ParseTasks turns multi-line link text into a deduplicated task list. Each
// line may carry an optional custom filename after a "||" separator. Never
// fails; problems are reported line by line in the diagnostics slice.
func ParseTasks(text string) ([]models.Task, []string) {
	if text == "" {
		return nil, []string{"No input."}
	}

	var (
		tasks       []models.Task
		diagnostics []string
	)
	seen := make(map[string]struct{})

	for lineno, rawLine := range strings.Split(fullWidthReplacer.Replace(text), "\n") {
		lineno++
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		left, right := line, ""
		if idx := strings.Index(line, "||"); idx >= 0 {
			left, right = line[:idx], line[idx+2:]
		}

		candidates := ExtractURLs(left)
		if len(candidates) == 0 {
			diagnostics = append(diagnostics, fmt.Sprintf("Line %d: no URL found.", lineno))
			continue
		}

		u := candidates[0]
		if _, ok := seen[u]; ok {
			diagnostics = append(diagnostics, fmt.Sprintf("Line %d: duplicate ignored (%s).", lineno, u))
			continue
		}
		if reason := unsupportedReason(u); reason != "" {
			diagnostics = append(diagnostics, fmt.Sprintf("Line %d: unsupported URL (%s).", lineno, reason))
			continue
		}

		tasks = append(tasks, models.Task{URL: u, Filename: normalizeFilenameCandidate(right)})
		seen[u] = struct{}{}
	}

	if len(tasks) == 0 {
		diagnostics = append(diagnostics, "No valid Bilibili URLs found in line-based parser.")
	}
	return tasks, diagnostics
}

// DiagnoseURLs runs the same extraction and validation as ParseTasks without
// filename handling, for pre-flight link checks.
func DiagnoseURLs(text string) ([]string, []string) {
	extracted := ExtractURLs(text)
	if len(extracted) == 0 {
		return nil, []string{"No URL pattern found in input."}
	}

	var (
		valid       []string
		diagnostics []string
	)
	seen := make(map[string]struct{}, len(extracted))

	for _, u := range extracted {
		if _, ok := seen[u]; ok {
			diagnostics = append(diagnostics, "Duplicate ignored: "+u)
			continue
		}
		seen[u] = struct{}{}

		if reason := unsupportedReason(u); reason != "" {
			diagnostics = append(diagnostics, fmt.Sprintf("Unsupported: %s (%s)", u, reason))
			continue
		}
		valid = append(valid, u)
	}

	if len(valid) == 0 {
		diagnostics = append(diagnostics, "No supported Bilibili URL remained after filtering.")
	}
	return valid, diagnostics
}

// ParseTaskFile reads link text from a file and parses it like ParseTasks.
// Hashtag lines are treated as comments.
func ParseTaskFile(fpath string) ([]models.Task, []string, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.E("Failed to close file %q: %v", fpath, err)
		}
	}()

	var b strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	tasks, diagnostics := ParseTasks(b.String())
	return tasks, diagnostics, nil
}

// normalizeFilenameCandidate trims and unquotes a custom filename, returning
// "" when nothing usable remains.
func normalizeFilenameCandidate(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	return strings.Trim(cleaned, filenameQuoteChars)
}
