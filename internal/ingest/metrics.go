package ingest

import (
	"adcrm/pkg/contracts/domain"
)

// ComputeMetrics fills the derived fields of a reconciled record. Every
// division is guarded by a strict "> 0" check on its denominator, so a zero
// or negative denominator degrades the metric to 0 rather than NaN or an
// infinity. ROI is ROAS shifted by -100 unconditionally: an adset with spend
// and no return reports -100%, not 0.
func ComputeMetrics(rec domain.CampaignRecord) domain.CampaignRecord {
	if rec.Impressions > 0 {
		rec.CPM = rec.Spend / rec.Impressions * 1000
		rec.CTR = rec.Clicks / rec.Impressions * 100
	}
	if rec.Clicks > 0 {
		rec.CPC = rec.Spend / rec.Clicks
		rec.CR = rec.Registrations / rec.Clicks * 100
	}
	if rec.Registrations > 0 {
		rec.CPL = rec.Spend / rec.Registrations
		rec.Approval = rec.Depositors / rec.Registrations * 100
	}
	if rec.Spend > 0 {
		rec.ROASFTD = rec.FTDSum / rec.Spend * 100
		rec.ROASAll = rec.DepositSum / rec.Spend * 100
	}
	rec.ROIFTD = rec.ROASFTD - 100
	rec.ROIAll = rec.ROASAll - 100
	return rec
}

// ComputeBatchMetrics applies ComputeMetrics to every record of a batch.
func ComputeBatchMetrics(recs []domain.CampaignRecord) []domain.CampaignRecord {
	out := make([]domain.CampaignRecord, len(recs))
	for i, rec := range recs {
		out[i] = ComputeMetrics(rec)
	}
	return out
}
