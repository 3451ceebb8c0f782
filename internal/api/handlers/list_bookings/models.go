package list_bookings

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

// Пагинация по умолчанию и её верхняя граница
const (
	defaultLimit = 50
	maxLimit     = 200
)

var errInvalidPagination = errors.New("invalid pagination parameters")

// parseQuery собирает запрос сервиса из query-параметров
// Поддерживаются: providerId, status, startDate, endDate (YYYY-MM-DD),
// includeInactive, limit, offset
func parseQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Limit: defaultLimit,
	}

	if v := query.Get("providerId"); v != "" {
		providerID, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		req.ProviderID = &providerID
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, errInvalidPagination
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		req.Limit = limit
	}

	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, errInvalidPagination
		}
		req.Offset = offset
	}

	return req, nil
}
