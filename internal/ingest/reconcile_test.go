package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adcrm/pkg/contracts/domain"
)

func TestReconcileOuterJoin(t *testing.T) {
	delivery := []domain.DeliveryStats{
		{Adset: "adset-a", Spend: 100, Impressions: 5000, Clicks: 50},
		{Adset: "adset-b", Spend: 40, Impressions: 2000, Clicks: 10},
	}
	panel := []domain.PanelStats{
		{Adset: "adset-a", Registrations: 10, Depositors: 2, DepositSum: 300},
		{Adset: "adset-c", Registrations: 3, Depositors: 1, DepositSum: 50},
	}

	got := Reconcile(delivery, panel, nil, "2026-04-01")
	require.Len(t, got, 3)

	// Sorted by adset for reproducible batches.
	assert.Equal(t, "adset-a", got[0].Adset)
	assert.Equal(t, "adset-b", got[1].Adset)
	assert.Equal(t, "adset-c", got[2].Adset)

	// Matched on both sides.
	assert.Equal(t, 100.0, got[0].Spend)
	assert.Equal(t, 10.0, got[0].Registrations)

	// Delivery only: panel side zero-filled.
	assert.Equal(t, 40.0, got[1].Spend)
	assert.Equal(t, 0.0, got[1].Registrations)
	assert.Equal(t, 0.0, got[1].DepositSum)

	// Panel only: delivery side zero-filled.
	assert.Equal(t, 0.0, got[2].Spend)
	assert.Equal(t, 3.0, got[2].Registrations)

	for _, rec := range got {
		assert.Equal(t, "2026-04-01", rec.ReportDate)
	}
}

func TestReconcileSumsDuplicateKeys(t *testing.T) {
	delivery := []domain.DeliveryStats{
		{Adset: "adset-a", Spend: 10, Clicks: 1},
		{Adset: "adset-a", Spend: 15, Clicks: 2},
	}
	panel := []domain.PanelStats{
		{Adset: "adset-a", Registrations: 1},
		{Adset: "adset-a", Registrations: 4},
	}

	got := Reconcile(delivery, panel, nil, "2026-04-01")
	require.Len(t, got, 1)
	assert.Equal(t, 25.0, got[0].Spend)
	assert.Equal(t, 3.0, got[0].Clicks)
	assert.Equal(t, 5.0, got[0].Registrations)
}

func TestReconcileMergesExtraSource(t *testing.T) {
	panel := []domain.PanelStats{{Adset: "adset-a", Registrations: 2}}
	extra := []domain.PanelStats{
		{Adset: "adset-a", Depositors: 1, DepositSum: 100},
		{Adset: "adset-d", Registrations: 7},
	}

	got := Reconcile(nil, panel, extra, "2026-04-01")
	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[0].Registrations)
	assert.Equal(t, 1.0, got[0].Depositors)
	assert.Equal(t, 100.0, got[0].DepositSum)
	assert.Equal(t, 7.0, got[1].Registrations)
}

func TestReconcileEmptySources(t *testing.T) {
	got := Reconcile(nil, nil, nil, "2026-04-01")
	assert.Empty(t, got)
}
