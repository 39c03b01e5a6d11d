package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	nsPresentation = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawing      = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

var slidePath = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

type presentationPart struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsPart struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// ExtractPPTX returns the text of every top-level text shape, slide by slide.
// Paragraphs within a shape are joined by newlines and each shape ends with a newline.
func ExtractPPTX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PPTX archive: %w", err)
	}

	slides := slideOrder(zr)
	if len(slides) == 0 {
		return "", fmt.Errorf("no slides found in PPTX archive")
	}

	var sb strings.Builder
	for _, f := range slides {
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		shapes, err := slideShapeTexts(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", f.Name, err)
		}
		for _, text := range shapes {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// slideOrder returns the slide parts in presentation order, as listed by sldIdLst in
// ppt/presentation.xml. Archives without a readable slide list fall back to the
// number in each slideN.xml name.
func slideOrder(zr *zip.Reader) []*zip.File {
	files := map[string]*zip.File{}
	type numbered struct {
		num  int
		file *zip.File
	}
	var byNumber []numbered
	for _, f := range zr.File {
		files[f.Name] = f
		if m := slidePath.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			byNumber = append(byNumber, numbered{num: n, file: f})
		}
	}

	var pres presentationPart
	var rels relationshipsPart
	if readXMLPart(files["ppt/presentation.xml"], &pres) == nil &&
		readXMLPart(files["ppt/_rels/presentation.xml.rels"], &rels) == nil && len(pres.SlideIDs) > 0 {
		targets := map[string]string{}
		for _, rel := range rels.Relationships {
			targets[rel.ID] = rel.Target
		}
		var ordered []*zip.File
		for _, id := range pres.SlideIDs {
			target, ok := targets[id.RelID]
			if !ok {
				continue
			}
			name := path.Clean(path.Join("ppt", target))
			if strings.HasPrefix(target, "/") {
				name = strings.TrimPrefix(path.Clean(target), "/")
			}
			if f, ok := files[name]; ok {
				ordered = append(ordered, f)
			}
		}
		if len(ordered) > 0 {
			return ordered
		}
	}

	sort.Slice(byNumber, func(i, j int) bool { return byNumber[i].num < byNumber[j].num })
	out := make([]*zip.File, len(byNumber))
	for i, s := range byNumber {
		out[i] = s.file
	}
	return out
}

func readXMLPart(f *zip.File, v any) error {
	if f == nil {
		return fmt.Errorf("part not found")
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	return xml.NewDecoder(rc).Decode(v)
}

// slideShapeTexts walks one slide part and returns the text of each shape that has a
// text body. Shapes nested in groups are not visited.
func slideShapeTexts(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		texts      []string
		groupDepth int
		inShape    bool
		hasBody    bool
		inText     bool
		paragraphs []string
		current    strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return texts, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsPresentation && t.Name.Local == "grpSp":
				groupDepth++
			case t.Name.Space == nsPresentation && t.Name.Local == "sp" && groupDepth == 0:
				inShape, hasBody = true, false
				paragraphs = paragraphs[:0]
			case !inShape:
			case t.Name.Space == nsPresentation && t.Name.Local == "txBody":
				hasBody = true
			case t.Name.Space == nsDrawing && t.Name.Local == "p":
				current.Reset()
			case t.Name.Space == nsDrawing && t.Name.Local == "t":
				inText = true
			case t.Name.Space == nsDrawing && t.Name.Local == "br":
				current.WriteString("\n")
			}
		case xml.CharData:
			if inShape && inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch {
			case t.Name.Space == nsPresentation && t.Name.Local == "grpSp":
				groupDepth--
			case !inShape:
			case t.Name.Space == nsDrawing && t.Name.Local == "t":
				inText = false
			case t.Name.Space == nsDrawing && t.Name.Local == "p":
				paragraphs = append(paragraphs, current.String())
			case t.Name.Space == nsPresentation && t.Name.Local == "sp":
				if hasBody {
					texts = append(texts, strings.Join(paragraphs, "\n"))
				}
				inShape = false
			}
		}
	}
}
