package notify

import (
	"fmt"
	"regexp"
	"strings"
)

// Slack message size limits.
const (
	maxTextLength        = 2700 // Leaves room for header, dividers and timestamps
	maxButtonValueLength = 1900 // Slack caps button values at 2000, keep a buffer
)

const divider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

var (
	boldMarkerRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	tightBulletRe  = regexp.MustCompile(`(?m)^-([^\s])`)
	tightHeadingRe = regexp.MustCompile(`(?m)^(#+)([^\s])`)

	bulletL1Re = regexp.MustCompile(`(?m)^- `)
	bulletL2Re = regexp.MustCompile(`(?m)^  - `)
	bulletL3Re = regexp.MustCompile(`(?m)^   - `)

	mainIssueRe = regexp.MustCompile(`(?i)Main Issue:?\s*(.+)`)
	errorLineRe = regexp.MustCompile(`(?i)Error:?\s*(.+)`)
)

// sectionEmojis decorates known summary headings with an emoji and Slack
// bold markers. Applied case-insensitively, in order.
var sectionEmojis = []struct {
	re    *regexp.Regexp
	subst string
}{
	{regexp.MustCompile(`(?i)Failure Summary:`), "📊 *Failure Summary:*"},
	{regexp.MustCompile(`(?i)Summary of Failure Log:`), "📝 *Summary of Failure Log:*"},
	{regexp.MustCompile(`(?i)Tests Run:`), "🔄 *Tests Run:*"},
	{regexp.MustCompile(`(?i)Tests Passed:`), "✅ *Tests Passed:*"},
	{regexp.MustCompile(`(?i)Failed/Interrupted:`), "❌ *Failed/Interrupted:*"},
	{regexp.MustCompile(`(?i)Details:`), "🔍 *Details:*"},
	{regexp.MustCompile(`(?i)Failures/Issues:`), "⚠️ *Failures/Issues:*"},
	{regexp.MustCompile(`(?i)Other Notes:`), "📌 *Other Notes:*"},
	{regexp.MustCompile(`(?i)Summary Statement:`), "📢 *Summary Statement:*"},
	{regexp.MustCompile(`(?i)Confidence Score:`), "🎯 *Confidence Score:*"},
}

// cleanMarkdown normalizes generic markdown into Slack's mrkdwn dialect.
// Slack has its own markdown-like syntax with differences, so ** bold
// markers are stripped rather than translated.
func cleanMarkdown(text string) string {
	if text == "" {
		return ""
	}

	text = boldMarkerRe.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "**", "")

	// Fix escaped newlines
	text = strings.ReplaceAll(text, `\n`, "\n")

	// Ensure lists have a space after the bullet and headings after the #
	text = tightBulletRe.ReplaceAllString(text, "- $1")
	text = tightHeadingRe.ReplaceAllString(text, "$1 $2")

	return text
}

// summaryTitle extracts a concise title from the summary text, preferring
// an explicit "Main Issue" line, then an error line, then the first
// substantial non-heading line.
func summaryTitle(text string, maxLength int) string {
	if text == "" {
		return "Bug Report"
	}

	clean := cleanMarkdown(text)

	var title string
	if m := mainIssueRe.FindStringSubmatch(clean); m != nil {
		title = strings.TrimSpace(m[1])
	} else if m := errorLineRe.FindStringSubmatch(clean); m != nil {
		title = strings.TrimSpace(m[1])
	} else {
		for _, line := range strings.Split(clean, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || len(line) <= 5 {
				continue
			}
			if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
				continue
			}
			title = line
			break
		}
		if title == "" {
			title = "Bug Report"
		}
	}

	if len(title) > maxLength {
		title = title[:maxLength-3] + "..."
	}

	return title
}

// formatSummary prepares the summary body for the rich Slack message:
// truncation, mrkdwn cleanup, bullet restyling and heading emojis.
func formatSummary(summary string) string {
	truncated := summary
	if len(summary) > maxTextLength {
		truncated = summary[:maxTextLength] + "... (truncated)"
	}

	formatted := cleanMarkdown(truncated)

	formatted = bulletL1Re.ReplaceAllString(formatted, "• ")
	formatted = bulletL2Re.ReplaceAllString(formatted, "  ◦ ")
	formatted = bulletL3Re.ReplaceAllString(formatted, "   ▪️ ")

	for _, s := range sectionEmojis {
		formatted = s.re.ReplaceAllString(formatted, s.subst)
	}

	return formatted
}

// scoreColor maps a confidence score to the attachment color convention:
// green for auto-file territory, yellow for borderline, red for low.
func scoreColor(score float64) string {
	switch {
	case score >= 0.8:
		return "#36a64f"
	case score >= 0.6:
		return "#ffcc00"
	default:
		return "#ff0000"
	}
}

// truncate cuts s to at most n bytes. Safe for the ASCII-dominated
// identifiers it is applied to.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatHeader(jobName, shortCommit, timestamp string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*🚨 Test Failure Report* | %s\n", timestamp)
	fmt.Fprintf(&b, "*🔧 Job:* %s\n", jobName)
	fmt.Fprintf(&b, "*📎 Commit:* `%s`\n", shortCommit)
	b.WriteString(divider)
	return b.String()
}
