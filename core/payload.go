package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	formData       = "Data"
	formUniqueName = "UniqueName"
	formTTL        = "Ttl"
)

type resourcePayload struct {
	Data       map[string]any
	UniqueName string
	TTL        int
}

func buildResourcePayload(in ResourceInput) resourcePayload {
	return resourcePayload{
		Data:       in.Data,
		UniqueName: strings.TrimSpace(in.ID),
		TTL:        effectiveTTL(in.TTL),
	}
}

func buildItemPayload(in ListItemInput) resourcePayload {
	return resourcePayload{
		Data: in.Data,
		TTL:  effectiveTTL(in.TTL),
	}
}

// form encodes the payload as Sync form parameters. Updates address the
// resource by path, so the unique name is only sent on create.
func (p resourcePayload) form(withUniqueName bool) (map[string]string, error) {
	data := p.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, validationError("data", "must be JSON encodable: "+err.Error())
	}
	out := map[string]string{formData: string(raw)}
	if withUniqueName && p.UniqueName != "" {
		out[formUniqueName] = p.UniqueName
	}
	if p.TTL > 0 {
		out[formTTL] = strconv.Itoa(p.TTL)
	}
	return out, nil
}

func effectiveTTL(ttl int) int {
	if ttl > 0 {
		return ttl
	}
	return 0
}

func positiveInteger(value any) (int, bool) {
	n, ok := integerValue(value)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

func nonNegativeInteger(value any) (int, bool) {
	n, ok := integerValue(value)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// integerValue accepts Go integer kinds, integral floats and json.Number.
// Strings and fractional numbers are not integers.
func integerValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return int(v), true
	case uint:
		if v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		if v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case uint64:
		if v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case float32:
		return integralFloat(float64(v))
	case float64:
		return integralFloat(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return integerValue(n)
		}
		if f, err := v.Float64(); err == nil {
			return integralFloat(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func integralFloat(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Trunc(v) != v {
		return 0, false
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}

func (r ListItemsRequest) query(defaultPageSize int) map[string]string {
	pageSize := r.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize <= 0 {
		pageSize = DefaultListPageSize
	}
	if pageSize > MaxListPageSize {
		pageSize = MaxListPageSize
	}
	query := map[string]string{
		"PageSize": strconv.Itoa(pageSize),
		"Order":    normalizeOrder(r.Order),
	}
	if r.FromIndex != nil && *r.FromIndex > 0 {
		query["From"] = strconv.Itoa(*r.FromIndex)
		query["Bounds"] = "exclusive"
	}
	return query
}

func normalizeOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), OrderDescending) {
		return OrderDescending
	}
	return OrderAscending
}
