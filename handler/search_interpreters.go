package handler

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/acikkaynak/interpreter-search-go/interpreters"
	"github.com/acikkaynak/interpreter-search-go/middleware/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type Searcher interface {
	Search(ctx context.Context, c interpreters.Criteria) (*interpreters.SearchResult, error)
}

// searchInterpreters godoc
// @Summary            Search interpreters by language, place and availability
// @Tags               Interpreter
// @Produce            json
// @Success            200 {object} interpreters.SearchResult
// @Failure            400 {object} interpreters.ErrorResponse
// @Failure            503 {object} interpreters.ErrorResponse
// @Param              q query string false "Free text over name, email and phone"
// @Param              source_language query string false "Source language"
// @Param              target_language query string false "Target language"
// @Param              city query string false "City (substring)"
// @Param              state query string false "State"
// @Param              metro query string false "Metro area (substring)"
// @Param              zip_code query string false "ZIP code to search around"
// @Param              radius query number false "Radius in miles (1-100, default 25)"
// @Param              available_only query bool false "Only available interpreters"
// @Param              certification_type query string false "Certification type"
// @Param              proficiency_level query string false "Proficiency level"
// @Param              min_experience query integer false "Minimum years of experience"
// @Param              max_experience query integer false "Maximum years of experience"
// @Param              min_rate query number false "Minimum hourly rate"
// @Param              max_rate query number false "Maximum hourly rate"
// @Param              is_active query bool false "Active records only (default true)"
// @Param              limit query integer false "Page size (1-100, default 50)"
// @Param              offset query integer false "Page offset"
// @Param              sort_by query string false "name, city, createdAt, rating or distance"
// @Param              sort_order query string false "asc or desc"
// @Router             /interpreters/search [GET]
func SearchInterpreters(searcher Searcher, maskContacts bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := ParseCriteria(ctx)
		if err != nil {
			return badRequest(ctx, err.Error())
		}

		res, err := searcher.Search(ctx.UserContext(), c)
		if err != nil {
			return respondError(ctx, err)
		}

		if res.Degraded {
			// Unfiltered answers must not outlive the geocoding failure.
			ctx.Set(fiber.HeaderCacheControl, "no-store")
		}

		masking := Masking{Enabled: maskContacts && !auth.Authorized(ctx)}
		return ctx.JSON(masking.results(res))
	}
}

// param copies the value out of the request buffer; postal codes outlive the
// request as geocode cache keys.
func param(ctx *fiber.Ctx, key string) string {
	return utils.CopyString(ctx.Query(key))
}

// ParseCriteria reads search criteria from the query string. Apart from an
// explicit limit, bounds are checked later by the search service.
func ParseCriteria(ctx *fiber.Ctx) (interpreters.Criteria, error) {
	c := interpreters.Criteria{
		Query:             param(ctx, "q"),
		SourceLanguage:    param(ctx, "source_language"),
		TargetLanguage:    param(ctx, "target_language"),
		City:              param(ctx, "city"),
		State:             param(ctx, "state"),
		Metro:             param(ctx, "metro"),
		PostalCode:        param(ctx, "zip_code"),
		CertificationType: param(ctx, "certification_type"),
		ProficiencyLevel:  param(ctx, "proficiency_level"),
		SortBy:            interpreters.SortField(param(ctx, "sort_by")),
		SortOrder:         interpreters.SortOrder(param(ctx, "sort_order")),
	}

	var err error
	if c.Radius, err = queryFloat(ctx, "radius"); err != nil {
		return c, err
	}
	if c.MinRate, err = queryFloat(ctx, "min_rate"); err != nil {
		return c, err
	}
	if c.MaxRate, err = queryFloat(ctx, "max_rate"); err != nil {
		return c, err
	}
	if c.MinExperience, err = queryInt(ctx, "min_experience"); err != nil {
		return c, err
	}
	if c.MaxExperience, err = queryInt(ctx, "max_experience"); err != nil {
		return c, err
	}

	availableOnly, err := queryBool(ctx, "available_only")
	if err != nil {
		return c, err
	}
	if availableOnly != nil && *availableOnly {
		c.Available = availableOnly
	}

	if c.IsActive, err = queryBool(ctx, "is_active"); err != nil {
		return c, err
	}
	if c.IsActive == nil {
		active := true
		c.IsActive = &active
	}

	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return c, err
	}
	if limit != nil {
		// Zero is how Criteria spells "unset", so an explicit zero is
		// rejected here.
		if *limit < 1 || *limit > interpreters.MaxLimit {
			return c, fmt.Errorf("limit must be between 1 and %d, got %d", interpreters.MaxLimit, *limit)
		}
		c.Limit = *limit
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		return c, err
	}
	if offset != nil {
		c.Offset = *offset
	}

	return c, nil
}

func queryFloat(ctx *fiber.Ctx, key string) (*float64, error) {
	s := ctx.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number, got %q", key, s)
	}
	return &v, nil
}

func queryInt(ctx *fiber.Ctx, key string) (*int, error) {
	s := ctx.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", key, s)
	}
	return &v, nil
}

func queryBool(ctx *fiber.Ctx, key string) (*bool, error) {
	s := ctx.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false, got %q", key, s)
	}
	return &v, nil
}
