package ingest

import (
	"adcrm/pkg/contracts/domain"
)

// TransformDelivery converts a raw delivery-platform export into canonical
// per-adset rows. One output row per input row; duplicate adsets are summed
// later by the reconciler.
func TransformDelivery(t *RawTable) []domain.DeliveryStats {
	idCol := identifierColumn(t, FieldAdset)
	spend := numericColumn(t, FieldSpend)
	impressions := numericColumn(t, FieldImpressions)
	clicks := numericColumn(t, FieldClicks)

	out := make([]domain.DeliveryStats, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, domain.DeliveryStats{
			Adset:       NormalizeAdset(t.Cell(i, idCol)),
			Spend:       spend[i],
			Impressions: impressions[i],
			Clicks:      clicks[i],
		})
	}
	return out
}

// TransformPanel converts a raw conversion-panel export into canonical
// per-adset rows, keyed by the normalized sub-identifier.
func TransformPanel(t *RawTable) []domain.PanelStats {
	idCol := identifierColumn(t, FieldSubID)
	registrations := numericColumn(t, FieldRegistrations)
	depositors := numericColumn(t, FieldDepositors)
	depositSum := numericColumn(t, FieldDepositSum)

	out := make([]domain.PanelStats, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, domain.PanelStats{
			Adset:         NormalizeAdset(t.Cell(i, idCol)),
			Registrations: registrations[i],
			Depositors:    depositors[i],
			DepositSum:    depositSum[i],
		})
	}
	return out
}

// TransformExtra is the extension point for the optional third source (the
// FTD feed). It currently resolves nothing and contributes an empty canonical
// set; filling it in does not change the reconciler's contract.
func TransformExtra(t *RawTable) []domain.PanelStats {
	return nil
}

// identifierColumn resolves the identifier field, falling back to the first
// column by position when no label matches.
func identifierColumn(t *RawTable, field Field) int {
	if col := ResolveColumn(t.Headers, field); col >= 0 {
		return col
	}
	return 0
}

// numericColumn resolves and coerces a numeric field, or yields a zero column
// when the export carries no matching label. Absence never aborts ingestion.
func numericColumn(t *RawTable, field Field) []float64 {
	col := ResolveColumn(t.Headers, field)
	if col < 0 {
		return make([]float64, len(t.Rows))
	}
	return CoerceColumn(t.Column(col))
}
