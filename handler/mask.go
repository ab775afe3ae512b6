package handler

import (
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	masker "github.com/ggwhite/go-masker"
)

// Masking hides contact details from anonymous callers.
type Masking struct {
	Enabled bool
}

func (m Masking) interpreter(i interpreters.Interpreter) interpreters.Interpreter {
	if !m.Enabled {
		return i
	}
	if i.Phone != "" {
		i.Phone = masker.Telephone(i.Phone)
	}
	if i.Email != "" {
		i.Email = masker.Email(i.Email)
	}
	return i
}

func (m Masking) results(res *interpreters.SearchResult) *interpreters.SearchResult {
	if !m.Enabled {
		return res
	}
	masked := *res
	masked.Results = make([]interpreters.Result, len(res.Results))
	for idx, r := range res.Results {
		masked.Results[idx] = interpreters.Result{Interpreter: m.interpreter(r.Interpreter), Distance: r.Distance}
	}
	return &masked
}
