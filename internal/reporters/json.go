// Package reporters implements C12: serializing a model.Report to the
// stable JSON schema and the text layout from spec.md §6. Grounded on
// the teacher's internal/reporters/json.go (marshal/indent/write idiom)
// and console.go (text layout idiom); field sets are replaced entirely
// to match this project's line-count schema instead of violations.
package reporters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ericfisherdev/rslines/internal/model"
)

// JSON writes report to w using the stable kebab-case schema that lives
// directly on model.LineStats/FileStats/Summary/Report's json tags, so
// no intermediate DTO is needed the way the teacher's JSONReport was for
// its violation-shaped model.
func JSON(w io.Writer, report model.Report, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("reporters: marshal report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("reporters: write report: %w", err)
	}
	if pretty {
		_, err = w.Write([]byte("\n"))
	}
	return err
}
