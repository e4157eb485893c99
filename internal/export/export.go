package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"scry/internal/model"
	"scry/internal/parse"
)

type Format string

const (
	FormatText   Format = "text"
	FormatNDJSON Format = "ndjson"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatNDJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q (want text|ndjson)", s)
}

type record struct {
	Index  int            `json:"index"`
	Raw    string         `json:"raw"`
	Fields map[string]any `json:"fields,omitempty"`
}

// ToFile writes rows to path, replacing any existing file.
func ToFile(path string, f Format, rows []model.Entry) error {
	if len(rows) == 0 {
		return errors.New("no entries")
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := To(out, f, rows); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func To(w io.Writer, f Format, rows []model.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range rows {
		switch f {
		case FormatNDJSON:
			rec := record{Index: e.Index, Raw: e.Line}
			if fields := parse.Fields(e.Line); len(fields) > 0 {
				rec.Fields = fields
			}
			b, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			bw.Write(b)
		default:
			bw.WriteString(e.Line)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
