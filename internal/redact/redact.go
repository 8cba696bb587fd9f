package redact

import (
	"math"
	"regexp"
	"strings"
)

const Redacted = "[REDACTED_SECRET]"

var (
	awsAccessKey = regexp.MustCompile(`AKIA[0-9A-Z]{16}`)
	awsSecretKey = regexp.MustCompile(`(?i)aws(.{0,20})?(secret|access)["'\s:=]+[A-Za-z0-9/+=]{32,}`)
	ghToken      = regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{30,}`)
	jwtToken     = regexp.MustCompile(`eyJ[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+`)
	genericToken = regexp.MustCompile(`(?i)(token|secret|api[_-]?key|access[_-]?key|password)["'\s:=]+[A-Za-z0-9/+=]{16,}`)
	urlParams    = regexp.MustCompile(`([?&](token|key|secret|sig|signature|access_token|auth)=)[^&\s]+`)
	base64Like   = regexp.MustCompile(`[A-Za-z0-9+/=]{32,}`)
	hexLike      = regexp.MustCompile(`[A-Fa-f0-9]{32,}`)

	keyBegin = regexp.MustCompile(`-----BEGIN ([A-Z]+ )?PRIVATE KEY-----`)
	keyEnd   = regexp.MustCompile(`-----END ([A-Z]+ )?PRIVATE KEY-----`)
)

// Line redacts secrets within a single line of text.
func Line(input string) string {
	if input == "" {
		return input
	}
	output := input
	output = awsAccessKey.ReplaceAllString(output, Redacted)
	output = awsSecretKey.ReplaceAllString(output, Redacted)
	output = ghToken.ReplaceAllString(output, Redacted)
	output = jwtToken.ReplaceAllString(output, Redacted)
	output = genericToken.ReplaceAllString(output, Redacted)
	output = urlParams.ReplaceAllString(output, "${1}"+Redacted)
	output = replaceIfHighEntropy(output, base64Like)
	output = replaceIfHighEntropy(output, hexLike)
	return output
}

// Diff redacts the content of context, removed and added lines of a unified
// diff. The op character of each line and every header line stay as they are,
// and a private key block is blanked one line at a time so the hunk keeps its
// line count. It returns the redacted text and the number of changed lines.
func Diff(input string) (string, int) {
	lines := strings.Split(input, "\n")
	changed := 0
	inHunk, inKey := false, false
	for i, line := range lines {
		if strings.HasPrefix(line, "@@") {
			inHunk, inKey = true, false
			continue
		}
		if !inHunk || line == "" {
			continue
		}
		op := line[0]
		if op != ' ' && op != '-' && op != '+' {
			if op != '\\' {
				inHunk, inKey = false, false
			}
			continue
		}

		content := line[1:]
		var redacted string
		switch {
		case inKey:
			redacted = Redacted
			if keyEnd.MatchString(content) {
				inKey = false
			}
		case keyBegin.MatchString(content):
			redacted = Redacted
			inKey = !keyEnd.MatchString(content)
		default:
			redacted = Line(content)
		}
		if redacted != content {
			lines[i] = string(op) + redacted
			changed++
		}
	}
	return strings.Join(lines, "\n"), changed
}

func replaceIfHighEntropy(input string, re *regexp.Regexp) string {
	return re.ReplaceAllStringFunc(input, func(match string) string {
		if entropy(match) >= 4.0 {
			return Redacted
		}
		return match
	})
}

// entropy is the Shannon entropy of s in bits per rune.
func entropy(s string) float64 {
	if s == "" {
		return 0
	}
	counts := make(map[rune]int)
	for _, r := range s {
		counts[r]++
	}
	length := float64(len([]rune(s)))
	var ent float64
	for _, count := range counts {
		p := float64(count) / length
		ent -= p * math.Log2(p)
	}
	return ent
}
