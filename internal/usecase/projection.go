package usecase

import (
	"sort"
	"strings"

	"github.com/scandent/orline/internal/domain/model"
)

// Sort keys accepted by Project. Unknown keys fall back to SortRecent.
const (
	SortRecent  = "recent"
	SortOld     = "old"
	SortDoctor  = "doctor"
	SortPatient = "patient"
	SortStatus  = "status"
)

// StatusAll is the sentinel disabling the status filter.
const StatusAll = "all"

// ProjectionOptions parameterize a role view over the order collection.
type ProjectionOptions struct {
	Search string
	Status string
	Sort   string
}

// Project derives a filtered, sorted view of orders. The source slice is
// never mutated; calling twice with the same arguments yields element-wise
// equal results.
func Project(orders []model.Order, opts ProjectionOptions) []model.Order {
	out := make([]model.Order, 0, len(orders))

	status := opts.Status
	if status == "" {
		status = StatusAll
	}
	query := strings.ToLower(strings.TrimSpace(opts.Search))

	for _, o := range orders {
		if status != StatusAll && string(o.Status) != status {
			continue
		}
		if query != "" && !strings.Contains(haystack(o), query) {
			continue
		}
		out = append(out, o)
	}

	switch opts.Sort {
	case SortOld:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortDoctor:
		sortByField(out, func(o model.Order) string { return o.Referred.Name })
	case SortPatient:
		sortByField(out, func(o model.Order) string { return o.Patient.Name })
	case SortStatus:
		sortByField(out, func(o model.Order) string { return string(o.Status) })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	return out
}

func sortByField(orders []model.Order, key func(model.Order) string) {
	sort.SliceStable(orders, func(i, j int) bool {
		return strings.ToLower(key(orders[i])) < strings.ToLower(key(orders[j]))
	})
}

// haystack joins the searchable fields into one lowercase string; an order
// matches when the query is a substring of it.
func haystack(o model.Order) string {
	return strings.ToLower(strings.Join([]string{
		o.Folio,
		o.Patient.Name,
		o.Patient.Phone,
		o.Referred.Name,
		o.StudyLine,
		o.ID,
	}, " "))
}

// KPI is the per-status totals over a projected collection.
type KPI struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Process   int `json:"process"`
	Ready     int `json:"ready"`
	Delivered int `json:"delivered"`
}

// CountKPIs reduces the collection to its status totals. Unknown statuses
// count as pending, matching how the views render them.
func CountKPIs(orders []model.Order) KPI {
	kpi := KPI{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusProcess:
			kpi.Process++
		case model.OrderStatusReady:
			kpi.Ready++
		case model.OrderStatusDelivered:
			kpi.Delivered++
		default:
			kpi.Pending++
		}
	}
	return kpi
}
