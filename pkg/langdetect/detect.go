// Package langdetect normalizes and infers language tags for fenced code.
//
// Both directions lean on go-enry's linguist data: Normalize maps a
// user-written fence tag through enry's alias table, Detect guesses the
// language of an untagged block from its content.
package langdetect

import (
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Canonical tags for the languages recognized by pattern.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langTypeScript = "typescript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// classifierCandidates bounds the classifier to languages likely to appear in
// chat messages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "Kotlin", "Swift",
	"PHP", "SQL", "JSON", "YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Normalize returns the canonical tag for a fence language, resolving aliases
// such as "ts" or "golang" and file extensions such as "py".
// Unknown tags are returned lowercased.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}

	if lang, ok := enry.GetLanguageByAlias(tag); ok {
		return canonical(lang)
	}

	if lang, safe := enry.GetLanguageByExtension("snippet." + tag); safe && lang != "" {
		return canonical(lang)
	}

	return strings.ToLower(tag)
}

// Detect guesses the language of a code block.
// It reports false when no strategy is confident.
func Detect(code string) (string, bool) {
	if strings.TrimSpace(code) == "" {
		return "", false
	}

	content := []byte(code)

	// Shebang first, it is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return canonical(lang), true
	}

	if lang := detectByPattern(code); lang != "" {
		return lang, true
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return canonical(lang), true
	}

	return "", false
}

// detectByPattern checks for language-specific patterns that are highly indicative.
func detectByPattern(code string) string {
	trimmed := strings.TrimSpace(code)

	detectors := []func(code, trimmed string) string{
		detectGo,
		detectPython,
		detectHTML,
		detectJSON,
		detectDockerfile,
		detectSQL,
		detectRust,
		detectTypeScript,
		detectJavaScript,
		detectYAML,
	}

	for _, detect := range detectors {
		if lang := detect(code, trimmed); lang != "" {
			return lang
		}
	}

	return ""
}

func detectGo(_, trimmed string) string {
	if strings.HasPrefix(trimmed, "package ") ||
		(strings.Contains(trimmed, "func ") && strings.Contains(trimmed, ":=")) {
		return langGo
	}
	return ""
}

func detectPython(code, trimmed string) string {
	if strings.Contains(code, "def ") && strings.Contains(code, "):") {
		return langPython
	}
	// Go imports use "import (".
	if strings.Contains(code, "import ") && !strings.Contains(code, "import (") {
		if strings.Contains(code, "from ") || strings.HasPrefix(trimmed, "import ") {
			return langPython
		}
	}
	if strings.Contains(code, "__name__") || strings.Contains(code, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(_, trimmed string) string {
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "<!doctype html") ||
		strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<head>") ||
		strings.Contains(lower, "<body>") {
		return langHTML
	}
	return ""
}

func detectJSON(_, trimmed string) string {
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
		strings.Contains(trimmed, `"`) &&
		!strings.Contains(trimmed, "=>") {
		return langJSON
	}
	return ""
}

func detectDockerfile(code, trimmed string) string {
	if strings.HasPrefix(trimmed, "FROM ") ||
		(strings.Contains(code, "\nFROM ") && strings.Contains(code, "\nRUN ")) ||
		(strings.Contains(code, "WORKDIR ") && strings.Contains(code, "COPY ")) {
		return langDockerfile
	}
	return ""
}

func detectSQL(_, trimmed string) string {
	upper := strings.ToUpper(trimmed)
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "WITH "} {
		if strings.HasPrefix(upper, keyword) {
			return langSQL
		}
	}
	return ""
}

func detectRust(code, _ string) string {
	if strings.Contains(code, "fn main()") ||
		strings.Contains(code, "println!") ||
		strings.Contains(code, "let mut ") {
		return langRust
	}
	return ""
}

func detectTypeScript(code, _ string) string {
	if (strings.Contains(code, "interface ") && strings.Contains(code, ": string")) ||
		strings.Contains(code, ": number") ||
		strings.Contains(code, "export type ") {
		return langTypeScript
	}
	return ""
}

// jsDeclaration matches a binding such as "const x =" or "let { a } =";
// a bare "let" or "const" is common in prose.
//
//nolint:gochecknoglobals // Compiled once.
var jsDeclaration = regexp.MustCompile(`(?m)^\s*(?:export\s+)?(?:const|let|var)\s+[\w${}\[\], ]+?\s*=[^=>]`)

// jsArrow matches an arrow function: "() =>", "(a, b) =>" or "x => {".
//
//nolint:gochecknoglobals // Compiled once.
var jsArrow = regexp.MustCompile(`\)\s*=>|\b[\w$]+\s*=>\s*[{(]`)

func detectJavaScript(code, _ string) string {
	if jsDeclaration.MatchString(code) ||
		jsArrow.MatchString(code) ||
		strings.Contains(code, "console.log(") {
		return langJavaScript
	}
	return ""
}

// detectYAML counts key: value pairs and root list items.
func detectYAML(code, _ string) string {
	yamlKeyCount := 0

	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Lines with parentheses or braces look like code.
		if strings.Contains(line, ": ") &&
			!strings.Contains(line, "(") &&
			!strings.Contains(line, "{") &&
			!strings.HasPrefix(line, `"`) {
			yamlKeyCount++
		}
		if strings.HasPrefix(line, "- ") {
			yamlKeyCount++
		}
	}

	if yamlKeyCount >= 2 {
		return langYAML
	}
	return ""
}

// canonical converts a go-enry language name to a fence tag.
func canonical(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ReplaceAll(strings.ToLower(lang), " ", "-")
}
