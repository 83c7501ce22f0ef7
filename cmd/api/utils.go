package main

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/farxc/procurement-insights/internal/procurement/types"
)

// parseList collects key from the query. The parameter may be repeated and
// every value may hold a comma separated list.
func parseList(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func parseSKUFilter(q url.Values) (types.SKUFilter, error) {
	f := types.SKUFilter{
		Departments: parseList(q, "departments"),
		Suppliers:   parseList(q, "suppliers"),
	}

	if raw := strings.TrimSpace(q.Get("cost_threshold")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return f, fmt.Errorf("cost_threshold must be a number")
		}
		if v < 0 {
			return f, fmt.Errorf("cost_threshold must not be negative")
		}
		f.CostThreshold = v
	}
	return f, nil
}

// parseLimit reads a positive integer, falling back to def and capping at ceiling.
func parseLimit(q url.Values, key string, def, ceiling int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	if n > ceiling {
		n = ceiling
	}
	return n, nil
}
