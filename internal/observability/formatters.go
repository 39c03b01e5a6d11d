// Package observability provides run metrics and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/content-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// shorten caps s to n runes, ending with "..." when cut.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items as bullets followed by an overflow note.
func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", shorten(items[i], 50)))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintCompanyProfile outputs a human-readable summary of the extracted company profile.
func (p *Printer) PrintCompanyProfile(profile *types.CompanyProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:   %s\n", profile.CompanyName))
	sb.WriteString(fmt.Sprintf("Tagline:   %s\n", profile.Tagline))
	sb.WriteString(fmt.Sprintf("Industry:  %s\n", profile.Industry))
	sb.WriteString(fmt.Sprintf("Audience:  %s\n", profile.TargetAudience))
	sb.WriteString(fmt.Sprintf("Tone:      %s\n", profile.ToneOfVoice))
	sb.WriteString("\n")

	writeList(&sb, "Products/Services", profile.ProductsServices, maxItemsToShow)
	writeList(&sb, "CTAs", profile.CTAs, 3)

	p.printBox("COMPANY PROFILE", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintEmails outputs the subject lines of the generated emails.
func (p *Printer) PrintEmails(emails []types.EmailItem) {
	if len(emails) == 0 {
		return
	}

	subjects := make([]string, len(emails))
	for i, e := range emails {
		subjects[i] = fmt.Sprintf("V%d %s", e.VersionNumber, e.SubjectLine)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d emails:\n\n", len(emails)))
	writeList(&sb, "Subject lines", subjects, maxItemsToShow)

	p.printBox("EMAILS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintSocialAds outputs ad names grouped by objective, with failed ads counted.
func (p *Printer) PrintSocialAds(platform types.Platform, ads []types.SocialAd) {
	if len(ads) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d ads:\n\n", len(ads)))

	for _, objective := range types.AdObjectives() {
		var names []string
		failed := 0
		for _, ad := range ads {
			if ad.Objective != string(objective) {
				continue
			}
			if strings.HasPrefix(ad.AdName, "Error generating ad") {
				failed++
			}
			names = append(names, ad.AdName)
		}
		label := string(objective)
		if failed > 0 {
			label = fmt.Sprintf("%s (⚠ %d placeholders)", objective, failed)
		}
		writeList(&sb, label, names, 2)
	}

	p.printBox(strings.ToUpper(string(platform))+" ADS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintAdCopy outputs Google ad headlines and descriptions.
func (p *Printer) PrintAdCopy(title string, adCopy types.AdCopy) {
	if len(adCopy.Headlines) == 0 && len(adCopy.Descriptions) == 0 {
		return
	}

	var sb strings.Builder
	writeList(&sb, fmt.Sprintf("Headlines (%d)", len(adCopy.Headlines)), adCopy.Headlines, maxItemsToShow)
	writeList(&sb, fmt.Sprintf("Descriptions (%d)", len(adCopy.Descriptions)), adCopy.Descriptions, 2)

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintResultSummary outputs item counts per content type.
func (p *Printer) PrintResultSummary(result *types.GenerationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	for _, ct := range types.ContentTypes() {
		sb.WriteString(fmt.Sprintf("%-16s %d\n", ct, result.Count(ct)))
	}

	p.printBox("GENERATION SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
