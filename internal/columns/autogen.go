package columns

import (
	"sort"
	"strings"
	"unicode"

	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/table"
)

// AutoDescriptors generates ephemeral column descriptors from a sample
// row for tables with no stored configuration. The id column leads and
// the rest follow alphabetically so the output is deterministic. These
// descriptors are never persisted.
func AutoDescriptors(tableName string, sample table.Row) []models.ColumnDescriptor {
	keys := make([]string, 0, len(sample.Fields))
	for k := range sample.Fields {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := sample.Fields["id"]; ok {
		keys = append([]string{"id"}, keys...)
	}

	out := make([]models.ColumnDescriptor, 0, len(keys))
	for i, key := range keys {
		out = append(out, models.ColumnDescriptor{
			TableName:   tableName,
			ColumnKey:   key,
			DisplayName: Humanize(key),
			DataType:    InferDataType(sample.Get(key)),
			IsVisible:   true,
			IsEditable:  key != "id",
			SortOrder:   i,
			Width:       "auto",
			Alignment:   models.AlignLeft,
		})
	}
	return out
}

// Humanize turns a camelCase or snake_case field key into header text:
// "startDate" becomes "Start Date", "budget_used" becomes "Budget Used".
func Humanize(key string) string {
	var b strings.Builder
	prev := rune(0)
	for _, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && prev != 0 && !unicode.IsUpper(prev) && prev != ' ':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
