package ingest

import "strings"

// Field names the semantic columns the transformers need. The keyword sets
// below are deliberately narrow: they are tuned to the two observed source
// systems, not to spreadsheets in general.
type Field string

const (
	FieldAdset         Field = "adset"
	FieldSubID         Field = "subid"
	FieldSpend         Field = "spend"
	FieldImpressions   Field = "impressions"
	FieldClicks        Field = "clicks"
	FieldRegistrations Field = "registrations"
	FieldDepositors    Field = "depositors"
	FieldDepositSum    Field = "deposit_sum"
)

type columnSpec struct {
	keywords []string
	// exclude disambiguates labels that share wording: a depositor-count
	// column must not be a deposit-amount column.
	exclude []string
}

var columnSpecs = map[Field]columnSpec{
	FieldAdset:         {keywords: []string{"adset", "адсет"}},
	FieldSubID:         {keywords: []string{"subid", "sub id", "sub_id"}},
	FieldSpend:         {keywords: []string{"spend", "расход"}},
	FieldImpressions:   {keywords: []string{"impression", "показы"}},
	FieldClicks:        {keywords: []string{"click", "клики"}},
	FieldRegistrations: {keywords: []string{"reg", "рег"}},
	FieldDepositors: {
		keywords: []string{"dep", "деп"},
		exclude:  []string{"сумм", "sum", "amount", "$"},
	},
	FieldDepositSum: {
		keywords: []string{"сумма деп", "сума деп", "sum of dep", "sum.of.dep", "deposit amount", "dep amount"},
	},
}

// ResolveColumn returns the index of the first column whose lower-cased label
// contains any keyword for the field (and none of its exclusions), or -1 when
// no column matches. Callers treat -1 as "field absent": numeric fields
// zero-fill, identifier fields fall back to column 0.
func ResolveColumn(headers []string, field Field) int {
	spec, ok := columnSpecs[field]
	if !ok {
		return -1
	}
	for i, h := range headers {
		label := strings.ToLower(strings.TrimSpace(h))
		if label == "" {
			continue
		}
		if !containsAny(label, spec.keywords) {
			continue
		}
		if containsAny(label, spec.exclude) {
			continue
		}
		return i
	}
	return -1
}

func containsAny(label string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}
