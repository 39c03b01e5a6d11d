package rendering

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/content-generator/internal/types"
)

// Sheet names in workbook order.
const (
	SheetEmail         = "Email"
	SheetLinkedIn      = "LinkedIn"
	SheetFacebook      = "Facebook"
	SheetGoogleSearch  = "Google Search"
	SheetGoogleDisplay = "Google Display"
	SheetReasoning     = "Reasoning"
)

// PlaceholderFill is the grey background of empty, placeholder and error cells.
const PlaceholderFill = "D3D3D3"

const (
	defaultSheet    = "Sheet1"
	maxColumnWidth  = 70
	wideColumnWidth = 50
	reasoningTitle  = "Scraped Client Data & Generation Reasoning"
	reasoningHeader = "Reasoning for Content Generation:"
)

var (
	emailHeaders    = []string{"Version #", "Objective", "Headline", "Subject Line", "Body", "CTA"}
	linkedInHeaders = []string{"Version #", "Ad Name", "Objective", "Introductory Text", "Image Copy", "Headline", "Destination", "CTA Button"}
	facebookHeaders = []string{"Version #", "Ad Name", "Objective", "Primary Text", "Image Copy", "Headline", "Link Description", "Destination", "CTA Button"}

	// Columns that get at least wideColumnWidth.
	wideColumns = map[string]bool{
		"body": true, "introductory text": true, "primary text": true, "link description": true,
		"text": true, "headline": true, "subject line": true,
	}
)

// styles holds the style IDs registered on a workbook.
type styles struct {
	header        int
	data          int
	dataCentered  int
	sectionHeader int
	placeholder   int
	title         int
	label         int
	reasoningHead int
	reasoningBody int
}

// BuildWorkbook lays out result and the company profile as an XLSX workbook.
// Email and social sheets are omitted when they have no rows; Reasoning is always present.
func BuildWorkbook(result *types.GenerationResult, profile *types.CompanyProfile) (*excelize.File, error) {
	if result == nil {
		result = &types.GenerationResult{}
	}
	if profile == nil {
		profile = types.NewFallbackProfile("")
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, &RenderError{Message: "failed to create styles", Cause: err}
	}

	steps := []struct {
		sheet string
		skip  bool
		write func(*excelize.File, string, *styles) error
	}{
		{SheetEmail, len(result.Email) == 0, func(f *excelize.File, s string, st *styles) error {
			return writeTable(f, s, st, emailHeaders, emailRows(result.Email))
		}},
		{SheetLinkedIn, len(result.LinkedIn) == 0, func(f *excelize.File, s string, st *styles) error {
			return writeTable(f, s, st, linkedInHeaders, linkedInRows(result.LinkedIn))
		}},
		{SheetFacebook, len(result.Facebook) == 0, func(f *excelize.File, s string, st *styles) error {
			return writeTable(f, s, st, facebookHeaders, facebookRows(result.Facebook))
		}},
		{SheetGoogleSearch, isEmptyCopy(result.GoogleSearch), func(f *excelize.File, s string, st *styles) error {
			return writeAdCopy(f, s, st, result.GoogleSearch, 15, 4)
		}},
		{SheetGoogleDisplay, isEmptyCopy(result.GoogleDisplay), func(f *excelize.File, s string, st *styles) error {
			return writeAdCopy(f, s, st, result.GoogleDisplay, 5, 5)
		}},
		{SheetReasoning, false, func(f *excelize.File, s string, st *styles) error {
			return writeReasoning(f, s, st, profile, result.ReasoningText)
		}},
	}

	for _, step := range steps {
		if step.skip {
			continue
		}
		if _, err := f.NewSheet(step.sheet); err != nil {
			_ = f.Close()
			return nil, &RenderError{Message: fmt.Sprintf("failed to add sheet %s", step.sheet), Cause: err}
		}
		if err := step.write(f, step.sheet, st); err != nil {
			_ = f.Close()
			return nil, &RenderError{Message: fmt.Sprintf("failed to write sheet %s", step.sheet), Cause: err}
		}
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		_ = f.Close()
		return nil, &RenderError{Message: "failed to remove default sheet", Cause: err}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook builds the workbook and saves it to path.
func WriteWorkbook(path string, result *types.GenerationResult, profile *types.CompanyProfile) error {
	f, err := BuildWorkbook(result, profile)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to save workbook %s", path), Cause: err}
	}
	return nil
}

// Encode builds the workbook and writes it to w.
func Encode(w io.Writer, result *types.GenerationResult, profile *types.CompanyProfile) error {
	f, err := BuildWorkbook(result, profile)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write workbook", Cause: err}
	}
	return nil
}

func emailRows(items []types.EmailItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for _, e := range items {
		rows = append(rows, []interface{}{e.VersionNumber, e.Objective, e.Headline, e.SubjectLine, e.Body, e.CTA})
	}
	return rows
}

func linkedInRows(ads []types.SocialAd) [][]interface{} {
	rows := make([][]interface{}, 0, len(ads))
	for _, a := range ads {
		rows = append(rows, []interface{}{
			a.VersionNumber, a.AdName, a.Objective, a.IntroductoryText, a.ImageCopy, a.Headline, a.Destination, a.CTAButton,
		})
	}
	return rows
}

func facebookRows(ads []types.SocialAd) [][]interface{} {
	rows := make([][]interface{}, 0, len(ads))
	for _, a := range ads {
		rows = append(rows, []interface{}{
			a.VersionNumber, a.AdName, a.Objective, a.PrimaryText, a.ImageCopy, a.Headline, a.LinkDescription, a.Destination, a.CTAButton,
		})
	}
	return rows
}

func isEmptyCopy(c types.AdCopy) bool {
	return len(c.Headlines) == 0 && len(c.Descriptions) == 0
}

// writeTable writes a header row and data rows. The first column is centered.
func writeTable(f *excelize.File, sheet string, st *styles, headers []string, rows [][]interface{}) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", st.header); err != nil {
		return err
	}

	for i, row := range rows {
		r := i + 2
		start, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, start, st.dataCentered); err != nil {
			return err
		}
		if len(headers) > 1 {
			second, _ := excelize.CoordinatesToCellName(2, r)
			if err := f.SetCellStyle(sheet, second, fmt.Sprintf("%s%d", lastCol, r), st.data); err != nil {
				return err
			}
		}
		if err := f.SetRowHeight(sheet, r, 45); err != nil {
			return err
		}
	}

	for c, h := range headers {
		name, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(sheet, name, name, columnWidth(h, rows, c)); err != nil {
			return err
		}
	}
	return nil
}

// columnWidth sizes a column from its header and the first line of up to four data rows.
func columnWidth(header string, rows [][]interface{}, col int) float64 {
	longest := len([]rune(header))
	for i := 0; i < len(rows) && i < 4; i++ {
		if col >= len(rows[i]) {
			continue
		}
		value := fmt.Sprint(rows[i][col])
		if value == "" {
			continue
		}
		first := strings.SplitN(value, "\n", 2)[0]
		if n := len([]rune(first)); n > longest {
			longest = n
		}
	}
	width := longest + 8
	if wideColumns[strings.ToLower(header)] && width < wideColumnWidth {
		width = wideColumnWidth
	}
	if width > maxColumnWidth {
		width = maxColumnWidth
	}
	return float64(width)
}

// writeAdCopy writes the headline and description sections of a Google ads sheet.
// Exactly headlineCount and descriptionCount slots are written; missing items are blank.
func writeAdCopy(f *excelize.File, sheet string, st *styles, c types.AdCopy, headlineCount, descriptionCount int) error {
	row := 1
	sections := []struct {
		title  string
		items  []string
		count  int
		height float64
	}{
		{fmt.Sprintf("Headlines (%d total, Max 30 characters each)", headlineCount), c.Headlines, headlineCount, 30},
		{fmt.Sprintf("Descriptions (%d total, Max 90 characters each)", descriptionCount), c.Descriptions, descriptionCount, 45},
	}

	for s, section := range sections {
		if s > 0 {
			row++ // spacer
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(sheet, cell, section.title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.sectionHeader); err != nil {
			return err
		}
		if err := f.SetRowHeight(sheet, row, 25); err != nil {
			return err
		}
		row++

		for i := 0; i < section.count; i++ {
			text := ""
			if i < len(section.items) {
				text = section.items[i]
			}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return err
			}
			style := st.data
			if IsPlaceholder(text) {
				style = st.placeholder
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
			if err := f.SetRowHeight(sheet, row, section.height); err != nil {
				return err
			}
			row++
		}
	}

	return f.SetColWidth(sheet, "A", "A", 100)
}

// IsPlaceholder reports whether an ad copy cell is empty or holds placeholder or error text.
func IsPlaceholder(text string) bool {
	return text == "" || strings.Contains(text, "Placeholder") || strings.Contains(text, types.ErrorSentinel)
}

// writeReasoning writes the profile summary followed by the reasoning text in a merged block.
func writeReasoning(f *excelize.File, sheet string, st *styles, profile *types.CompanyProfile, reasoning string) error {
	if err := f.SetCellValue(sheet, "A1", reasoningTitle); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", st.title); err != nil {
		return err
	}

	row := 2
	for _, field := range profileRows(profile) {
		a, b := fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(sheet, a, field[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, b, field[1]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, a, a, st.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, b, b, st.data); err != nil {
			return err
		}
		if err := f.SetRowHeight(sheet, row, 35); err != nil {
			return err
		}
		row++
	}

	if err := f.SetRowHeight(sheet, row, 15); err != nil {
		return err
	}
	row++

	header := fmt.Sprintf("A%d", row)
	if err := f.SetCellValue(sheet, header, reasoningHeader); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, header, fmt.Sprintf("B%d", row)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, header, fmt.Sprintf("B%d", row), st.reasoningHead); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, row, 25); err != nil {
		return err
	}
	row++

	if reasoning == "" {
		reasoning = types.ReasoningUnavailablePlaceholder
	}
	span := reasoningRows(reasoning)
	start, end := fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row+span-1)
	if err := f.SetCellValue(sheet, start, reasoning); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, start, end); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, start, end, st.reasoningBody); err != nil {
		return err
	}
	for r := row; r < row+span; r++ {
		if err := f.SetRowHeight(sheet, r, 30); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 70)
}

func profileRows(p *types.CompanyProfile) [][2]string {
	return [][2]string{
		{"Company Name", p.CompanyName},
		{"Tagline", p.Tagline},
		{"Mission Statement", p.MissionStatement},
		{"Industry", p.Industry},
		{"Products/Services", joinOrNA(p.ProductsServices)},
		{"USPs/Value Proposition", p.USPsValueProposition},
		{"Target Audience", p.TargetAudience},
		{"Tone of Voice", p.ToneOfVoice},
		{"CTAs from Website", joinOrNA(p.CTAs)},
	}
}

func joinOrNA(list []string) string {
	if len(list) == 0 {
		return "N/A"
	}
	return strings.Join(list, ", ")
}

// reasoningRows returns how many rows the merged reasoning block spans: roughly two
// 70-character lines per row, at least six rows.
func reasoningRows(text string) int {
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		lines += len([]rune(line))/70 + 1
	}
	rows := lines/2 + 1
	if rows < 6 {
		rows = 6
	}
	return rows
}

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	black := excelize.Fill{Type: "pattern", Color: []string{"000000"}, Pattern: 1}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	st := &styles{}
	defs := []struct {
		id    *int
		style *excelize.Style
	}{
		{&st.header, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "FFFFFF"}, Fill: black, Alignment: center, Border: border}},
		{&st.data, &excelize.Style{Alignment: left, Border: border}},
		{&st.dataCentered, &excelize.Style{Alignment: center, Border: border}},
		{&st.sectionHeader, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "FFFFFF"}, Fill: black, Alignment: left, Border: border}},
		{&st.placeholder, &excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{PlaceholderFill}, Pattern: 1},
			Alignment: left,
			Border:    border,
		}},
		{&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 14}, Fill: black, Alignment: center, Border: border}},
		{&st.label, &excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: left, Border: border}},
		{&st.reasoningHead, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}, Alignment: left, Border: border}},
		{&st.reasoningBody, &excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
			Border:    border,
		}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, err
		}
		*d.id = id
	}
	return st, nil
}
