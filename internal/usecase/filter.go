package usecase

import (
	"strings"

	"github.com/logizar/logizar-crm/internal/entity"
)

// Filtros de listados: substring case-insensitive sobre los campos
// visibles más, según la entidad, un filtro categórico exacto. Se
// recalculan sobre el conjunto ya cargado; nunca vuelven a consultar
// la base.

const FilterAll = "all"

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func FilterContacts(contacts []entity.Contact, query string) []entity.Contact {
	result := make([]entity.Contact, 0, len(contacts))
	for _, c := range contacts {
		if matches(query, c.FullName, c.Email, c.Phone, c.Company) {
			result = append(result, c)
		}
	}
	return result
}

func FilterActivities(activities []entity.Activity, query, typeFilter string) []entity.Activity {
	result := make([]entity.Activity, 0, len(activities))
	for _, a := range activities {
		if !matches(query, a.Description, a.Subject, a.ContactName) {
			continue
		}
		if typeFilter != "" && typeFilter != FilterAll && string(a.Type) != typeFilter {
			continue
		}
		result = append(result, a)
	}
	return result
}

func FilterDeals(deals []entity.Deal, query, statusFilter string) []entity.Deal {
	result := make([]entity.Deal, 0, len(deals))
	for _, d := range deals {
		if !matches(query, d.ContactName, d.ProductName, d.ContactCompany) {
			continue
		}
		if statusFilter != "" && statusFilter != FilterAll && string(d.Status) != statusFilter {
			continue
		}
		result = append(result, d)
	}
	return result
}
