package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scandent/orline/internal/domain/model"
)

func sampleOrders() []model.Order {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []model.Order{
		{
			ID: "o1", Folio: "ORL-000001", Status: model.OrderStatusPending,
			Patient:   model.Patient{Name: "Ana Torres", Phone: "5512345678"},
			Referred:  model.ReferringDoctor{Name: "Zúñiga"},
			StudyLine: "Estudio: Radiografías Digitales: Panorámica | Referido: Zúñiga",
			CreatedAt: base,
		},
		{
			ID: "o2", Folio: "ORL-000002", Status: model.OrderStatusProcess,
			Patient:   model.Patient{Name: "Bruno Díaz", Phone: "5598765432"},
			Referred:  model.ReferringDoctor{Name: "anaya"},
			StudyLine: "Estudio: Escaneo Intraoral | Referido: anaya",
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID: "o3", Folio: "ORL-000003", Status: model.OrderStatusDelivered,
			Patient:   model.Patient{Name: "carla ruiz"},
			Referred:  model.ReferringDoctor{Name: "Mena"},
			StudyLine: "Estudio: Impresión 3D | Referido: Mena",
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

func TestProjectDoesNotMutateSource(t *testing.T) {
	orders := sampleOrders()
	first := Project(orders, ProjectionOptions{Sort: SortOld})
	second := Project(orders, ProjectionOptions{Sort: SortOld})

	assert.Equal(t, first, second, "same arguments must yield element-wise equal results")
	assert.Equal(t, "o1", orders[0].ID, "source order must be untouched")
	assert.Equal(t, "o3", orders[2].ID, "source order must be untouched")
}

func TestProjectStatusFilter(t *testing.T) {
	out := Project(sampleOrders(), ProjectionOptions{Status: "process"})
	require.Len(t, out, 1)
	assert.Equal(t, "o2", out[0].ID)

	assert.Len(t, Project(sampleOrders(), ProjectionOptions{Status: StatusAll}), 3)
	assert.Len(t, Project(sampleOrders(), ProjectionOptions{}), 3, "empty filter behaves as all")
}

func TestProjectSearch(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		expect []string
	}{
		{"patient name case-insensitive", "ANA", []string{"o2", "o1"}}, // Bruno's doctor is "anaya"
		{"folio", "orl-000003", []string{"o3"}},
		{"phone substring", "98765", []string{"o2"}},
		{"study line", "impresión", []string{"o3"}},
		{"order id", "o1", []string{"o1"}},
		{"no match", "zzz", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Project(sampleOrders(), ProjectionOptions{Search: tc.query})
			ids := make([]string, 0, len(out))
			for _, o := range out {
				ids = append(ids, o.ID)
			}
			if tc.expect == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tc.expect, ids)
		})
	}
}

func TestProjectSortKeys(t *testing.T) {
	ids := func(out []model.Order) []string {
		got := make([]string, len(out))
		for i, o := range out {
			got[i] = o.ID
		}
		return got
	}

	assert.Equal(t, []string{"o3", "o2", "o1"}, ids(Project(sampleOrders(), ProjectionOptions{Sort: SortRecent})))
	assert.Equal(t, []string{"o1", "o2", "o3"}, ids(Project(sampleOrders(), ProjectionOptions{Sort: SortOld})))
	assert.Equal(t, []string{"o2", "o3", "o1"}, ids(Project(sampleOrders(), ProjectionOptions{Sort: SortDoctor})), "doctor sort is case-insensitive")
	assert.Equal(t, []string{"o1", "o2", "o3"}, ids(Project(sampleOrders(), ProjectionOptions{Sort: SortPatient})))
	assert.Equal(t, []string{"o3", "o1", "o2"}, ids(Project(sampleOrders(), ProjectionOptions{Sort: SortStatus})))
	assert.Equal(t, []string{"o3", "o2", "o1"}, ids(Project(sampleOrders(), ProjectionOptions{Sort: "bogus"})), "unknown key falls back to recent")
}

func TestProjectMissingValuesSortAsEmpty(t *testing.T) {
	orders := sampleOrders()
	orders[0].Referred.Name = ""
	out := Project(orders, ProjectionOptions{Sort: SortDoctor})
	assert.Equal(t, "o1", out[0].ID, "missing doctor sorts first as empty string")
}

func TestCountKPIs(t *testing.T) {
	kpi := CountKPIs(sampleOrders())
	assert.Equal(t, KPI{Total: 3, Pending: 1, Process: 1, Ready: 0, Delivered: 1}, kpi)

	filtered := Project(sampleOrders(), ProjectionOptions{Status: "delivered"})
	assert.Equal(t, KPI{Total: 1, Delivered: 1}, CountKPIs(filtered))
}
