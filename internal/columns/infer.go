package columns

import (
	"regexp"
	"strings"

	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/table"
)

var (
	datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	statusWordRe = regexp.MustCompile(`(?i)^(active|inactive|pending|completed)$`)
	imageURLRe   = regexp.MustCompile(`(?i)^https?://.*\.(jpg|jpeg|png|gif)$`)
)

// InferDataType guesses a column's data type from one sample value. It
// is a best-effort heuristic used only when no descriptor is stored:
// numbers map to number, date values or strings starting with
// YYYY-MM-DD map to date, strings containing '#' or matching a known
// status word map to status, image URLs map to image, and everything
// else falls back to text. Rule order matters; it is kept exact so
// misclassifications stay predictable.
func InferDataType(v table.Value) models.DataType {
	switch v.Kind() {
	case table.KindNumber:
		return models.DataTypeNumber
	case table.KindDate:
		return models.DataTypeDate
	case table.KindText:
		s := v.Text()
		if datePrefixRe.MatchString(s) {
			return models.DataTypeDate
		}
		if strings.Contains(s, "#") || statusWordRe.MatchString(s) {
			return models.DataTypeStatus
		}
		if imageURLRe.MatchString(s) {
			return models.DataTypeImage
		}
	}
	return models.DataTypeText
}
