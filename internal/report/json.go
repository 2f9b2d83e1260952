package report

import (
	"encoding/json"
	"io"
)

// jsonRenderer streams an ordered array of Report records.
type jsonRenderer struct {
	n int
}

func (j *jsonRenderer) Begin(w io.Writer) error {
	j.n = 0
	_, err := io.WriteString(w, "[")
	return err
}

func (j *jsonRenderer) Report(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "  ", "  ")
	if err != nil {
		return err
	}
	sep := "\n  "
	if j.n > 0 {
		sep = ",\n  "
	}
	j.n++
	if _, err := io.WriteString(w, sep); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (j *jsonRenderer) End(w io.Writer) error {
	closing := "\n]\n"
	if j.n == 0 {
		closing = "]\n"
	}
	_, err := io.WriteString(w, closing)
	return err
}
