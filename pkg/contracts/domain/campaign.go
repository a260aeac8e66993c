package domain

// DeliveryStats is the canonical per-adset row extracted from an ad-platform
// delivery export. Exactly one row per input row; aggregation by adset happens
// at reconciliation time.
type DeliveryStats struct {
	Adset       string  `json:"adset"`
	Spend       float64 `json:"spend"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
}

// PanelStats is the canonical per-adset row extracted from a conversion-panel
// export, keyed by the normalized sub-identifier.
type PanelStats struct {
	Adset         string  `json:"adset"`
	Registrations float64 `json:"registrations"`
	Depositors    float64 `json:"depositors"`
	DepositSum    float64 `json:"deposit_sum"`
}

// CampaignRecord is the unit of persistence: the outer join of all sources for
// one adset on one report date, plus every derived metric. Once appended to the
// ledger a record is never mutated.
type CampaignRecord struct {
	ReportDate string `json:"report_date" csv:"ReportDate"`
	BatchID    string `json:"batch_id" csv:"BatchID"`
	Adset      string `json:"adset" csv:"Adset"`

	// Source fields, zero-filled when a source did not report the adset.
	Spend         float64 `json:"spend" csv:"Spend"`
	Impressions   float64 `json:"impressions" csv:"Impressions"`
	Clicks        float64 `json:"clicks" csv:"Clicks"`
	Registrations float64 `json:"registrations" csv:"Registrations"`
	Depositors    float64 `json:"depositors" csv:"Depositors"`
	DepositSum    float64 `json:"deposit_sum" csv:"DepositSum"`
	FTDSum        float64 `json:"ftd_sum" csv:"FTDSum"`

	// Derived metrics. Denominator <= 0 degrades the metric to 0.
	CPM      float64 `json:"cpm" csv:"CPM"`
	CPC      float64 `json:"cpc" csv:"CPC"`
	CTR      float64 `json:"ctr" csv:"CTR"`
	CPL      float64 `json:"cpl" csv:"CPL"`
	CR       float64 `json:"cr" csv:"CR"`
	Approval float64 `json:"approval" csv:"Approval"`
	ROASFTD  float64 `json:"roas_ftd" csv:"ROASFTD"`
	ROASAll  float64 `json:"roas_all" csv:"ROASAll"`
	ROIFTD   float64 `json:"roi_ftd" csv:"ROIFTD"`
	ROIAll   float64 `json:"roi_all" csv:"ROIAll"`
}

// LedgerAggregates are the dashboard totals computed over a filtered result
// set. AvgROI is the mean of ROIAll across the rows, 0 when the set is empty.
type LedgerAggregates struct {
	TotalSpend         float64 `json:"total_spend"`
	TotalRegistrations float64 `json:"total_registrations"`
	TotalDepositors    float64 `json:"total_depositors"`
	TotalDepositSum    float64 `json:"total_deposit_sum"`
	AvgROI             float64 `json:"avg_roi"`
}
