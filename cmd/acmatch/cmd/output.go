package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sansecio/acmatch/config"
	"github.com/vmihailenco/msgpack/v5"
)

// matchRecord is one reported match. Offsets are in UTF-16 code units.
type matchRecord struct {
	File  string `json:"file" msgpack:"f"`
	Start int    `json:"start" msgpack:"s"`
	End   int    `json:"end" msgpack:"e"`
	Value string `json:"value" msgpack:"v"`
}

type recordWriter interface {
	Write(rec matchRecord) error
}

type textWriter struct{ w io.Writer }

// Write prints file:start-end<TAB>value.
func (t textWriter) Write(rec matchRecord) error {
	_, err := fmt.Fprintf(t.w, "%s:%d-%d\t%s\n", rec.File, rec.Start, rec.End, rec.Value)
	return err
}

type jsonWriter struct{ enc *json.Encoder }

func (j jsonWriter) Write(rec matchRecord) error {
	return j.enc.Encode(rec)
}

type msgpackWriter struct{ enc *msgpack.Encoder }

func (m msgpackWriter) Write(rec matchRecord) error {
	return m.enc.Encode(rec)
}

func newRecordWriter(w io.Writer, format string) (recordWriter, error) {
	switch format {
	case config.FormatText:
		return textWriter{w}, nil
	case config.FormatJSON:
		return jsonWriter{json.NewEncoder(w)}, nil
	case config.FormatMsgpack:
		return msgpackWriter{msgpack.NewEncoder(w)}, nil
	}
	return nil, fmt.Errorf("%w %q", config.ErrUnknownFormat, format)
}
