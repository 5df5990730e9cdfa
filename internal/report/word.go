package report

import (
	"bytes"
	"fmt"

	"github.com/gomutex/godocx"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
)

const wordTableStyle = "LightList-Accent4"

// Word renders one heading and one table per section.
type Word struct{}

func (Word) Kind() string      { return "word" }
func (Word) Extension() string { return "docx" }
func (Word) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (Word) Render(rep *analytics.Report) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, err
	}

	if _, err := doc.AddHeading(fmt.Sprintf("Report %s to %s", rep.Start, rep.End), 0); err != nil {
		return nil, err
	}

	for _, t := range tables(rep) {
		if _, err := doc.AddHeading(t.title, 1); err != nil {
			return nil, err
		}
		if len(t.rows) == 0 {
			doc.AddParagraph("No entries.")
			continue
		}

		tbl := doc.AddTable()
		tbl.Style(wordTableStyle)

		header := tbl.AddRow()
		for _, h := range t.header {
			header.AddCell().AddParagraph("").AddText(fmt.Sprint(h)).Bold(true)
		}
		for _, r := range t.rows {
			row := tbl.AddRow()
			for _, v := range r {
				row.AddCell().AddParagraph(fmt.Sprint(v))
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := doc.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
