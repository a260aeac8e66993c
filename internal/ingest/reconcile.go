package ingest

import (
	"sort"

	"adcrm/pkg/contracts/domain"
)

// Reconcile outer-joins the canonical source tables on the normalized adset
// key: every adset present in any source appears exactly once, with fields a
// source did not report zero-filled, stamped with the operator-supplied
// report date (2006-01-02).
//
// Rows sharing an adset within one source are summed before the join, so the
// result is well defined for duplicate keys. Output is sorted by adset for
// reproducible batches.
func Reconcile(delivery []domain.DeliveryStats, panel, extra []domain.PanelStats, reportDate string) []domain.CampaignRecord {
	deliveryByAdset := make(map[string]domain.DeliveryStats)
	for _, d := range delivery {
		agg := deliveryByAdset[d.Adset]
		agg.Adset = d.Adset
		agg.Spend += d.Spend
		agg.Impressions += d.Impressions
		agg.Clicks += d.Clicks
		deliveryByAdset[d.Adset] = agg
	}

	panelByAdset := make(map[string]domain.PanelStats)
	for _, rows := range [][]domain.PanelStats{panel, extra} {
		for _, p := range rows {
			agg := panelByAdset[p.Adset]
			agg.Adset = p.Adset
			agg.Registrations += p.Registrations
			agg.Depositors += p.Depositors
			agg.DepositSum += p.DepositSum
			panelByAdset[p.Adset] = agg
		}
	}

	keys := make([]string, 0, len(deliveryByAdset)+len(panelByAdset))
	seen := make(map[string]bool, len(deliveryByAdset)+len(panelByAdset))
	for k := range deliveryByAdset {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range panelByAdset {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]domain.CampaignRecord, 0, len(keys))
	for _, k := range keys {
		d := deliveryByAdset[k]
		p := panelByAdset[k]
		out = append(out, domain.CampaignRecord{
			ReportDate:    reportDate,
			Adset:         k,
			Spend:         d.Spend,
			Impressions:   d.Impressions,
			Clicks:        d.Clicks,
			Registrations: p.Registrations,
			Depositors:    p.Depositors,
			DepositSum:    p.DepositSum,
		})
	}
	return out
}
